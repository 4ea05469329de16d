package eval

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
)

// List and hashmap operations.

func init() {
	addBuiltinFns(map[string]any{
		"list":     listFn,
		"cons":     cons,
		"first":    first,
		"rest":     rest,
		"nth":      nth,
		"length":   length,
		"append":   appendFn,
		"reverse":  reverse,
		"map":      mapFn,
		"filter":   filterFn,
		"reduce":   reduce,
		"hash-map": hashMap,
		"get":      get,
		"assoc":    assoc,
		"dissoc":   dissoc,
		"keys":     keys,
		"values":   mapValues,
		"has-key?": vals.HasKey,
	})
}

// asList coerces a value to a list, treating nil as the empty list.
func asList(what string, v any) (vals.List, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case vals.List:
		return v, nil
	default:
		return nil, errs.BadType{What: what, Want: "list", Got: vals.Kind(v)}
	}
}

func listFn(args ...any) vals.List {
	return vals.List(args)
}

func cons(v, tail any) (vals.List, error) {
	lst, err := asList("second argument to cons", tail)
	if err != nil {
		return nil, err
	}
	out := make(vals.List, 0, len(lst)+1)
	out = append(out, v)
	return append(out, lst...), nil
}

func first(v any) (any, error) {
	lst, err := asList("argument to first", v)
	if err != nil {
		return nil, err
	}
	if len(lst) == 0 {
		return nil, nil
	}
	return lst[0], nil
}

// rest shares the tail of its argument. Lists are never mutated in place,
// so the sharing is unobservable.
func rest(v any) (vals.List, error) {
	lst, err := asList("argument to rest", v)
	if err != nil {
		return nil, err
	}
	if len(lst) == 0 {
		return vals.List{}, nil
	}
	return lst[1:], nil
}

func nth(lst vals.List, i int) (any, error) {
	if i < 0 || i >= len(lst) {
		return nil, errs.OutOfRange{What: "list index",
			ValidLow: 0, ValidHigh: len(lst) - 1, Actual: strconv.Itoa(i)}
	}
	return lst[i], nil
}

func length(v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case vals.List:
		return len(v), nil
	case vals.Map:
		return v.Len(), nil
	case string:
		return utf8.RuneCountInString(v), nil
	default:
		return 0, errs.BadType{What: "argument to length",
			Want: "list, map or string", Got: vals.Kind(v)}
	}
}

func appendFn(lists ...any) (vals.List, error) {
	out := vals.List{}
	for i, v := range lists {
		lst, err := asList(fmt.Sprintf("argument %d to append", i+1), v)
		if err != nil {
			return nil, err
		}
		out = append(out, lst...)
	}
	return out, nil
}

func reverse(v any) (vals.List, error) {
	lst, err := asList("argument to reverse", v)
	if err != nil {
		return nil, err
	}
	out := make(vals.List, len(lst))
	for i, elem := range lst {
		out[len(lst)-1-i] = elem
	}
	return out, nil
}

func mapFn(fm *Frame, f Callable, v any) (vals.List, error) {
	lst, err := asList("second argument to map", v)
	if err != nil {
		return nil, err
	}
	out := make(vals.List, len(lst))
	for i, elem := range lst {
		r, err := f.Call(fm, []any{elem})
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func filterFn(fm *Frame, f Callable, v any) (vals.List, error) {
	lst, err := asList("second argument to filter", v)
	if err != nil {
		return nil, err
	}
	out := vals.List{}
	for _, elem := range lst {
		r, err := f.Call(fm, []any{elem})
		if err != nil {
			return nil, err
		}
		if vals.Bool(r) {
			out = append(out, elem)
		}
	}
	return out, nil
}

// reduce folds a list from the left: (reduce f init (list a b)) computes
// (f (f init a) b).
func reduce(fm *Frame, f Callable, init, v any) (any, error) {
	lst, err := asList("third argument to reduce", v)
	if err != nil {
		return nil, err
	}
	acc := init
	for _, elem := range lst {
		acc, err = f.Call(fm, []any{acc, elem})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func hashMap(args ...any) (vals.Map, error) {
	if len(args)%2 != 0 {
		return nil, errs.BadValue{What: "arguments to hash-map",
			Valid:  "an even number of values",
			Actual: fmt.Sprintf("%d values", len(args))}
	}
	m := vals.EmptyMap
	for i := 0; i+1 < len(args); i += 2 {
		m = m.Assoc(args[i], args[i+1])
	}
	return m, nil
}

// get returns the value for a key, or nil if the key is absent.
func get(m vals.Map, k any) any {
	v, _ := m.Index(k)
	return v
}

func assoc(m vals.Map, k, v any) vals.Map {
	return m.Assoc(k, v)
}

func dissoc(m vals.Map, k any) vals.Map {
	return m.Dissoc(k)
}

// keys returns the keys of a map in an unspecified order.
func keys(m vals.Map) vals.List {
	out := vals.List{}
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		out = append(out, k)
	}
	return out
}

func mapValues(m vals.Map) vals.List {
	out := vals.List{}
	for it := m.Iterator(); it.HasElem(); it.Next() {
		_, v := it.Elem()
		out = append(out, v)
	}
	return out
}
