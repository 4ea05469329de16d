package eval

import "github.com/zem-editor/zem/pkg/eval/vals"

// Basic predicates.

func init() {
	addBuiltinFns(map[string]any{
		"not":      not,
		"eq?":      eqP,
		"equal?":   vals.Equal,
		"null?":    isNull,
		"list?":    isList,
		"symbol?":  isSymbol,
		"string?":  isString,
		"number?":  isNumber,
		"boolean?": isBool,
		"map?":     isMap,
		"fn?":      isFn,
		"macro?":   isMacro,
	})
}

func not(v any) bool {
	return !vals.Bool(v)
}

// eqP reports identity. Atoms compare by value, lists by backing storage,
// everything else (functions, macros, maps) by reference.
func eqP(a, b any) bool {
	if la, ok := a.(vals.List); ok {
		lb, ok := b.(vals.List)
		return ok && len(la) == len(lb) && (len(la) == 0 || &la[0] == &lb[0])
	}
	if _, ok := b.(vals.List); ok {
		return false
	}
	return a == b
}

func isNull(v any) bool {
	return v == nil
}

func isList(v any) bool {
	_, ok := v.(vals.List)
	return ok
}

func isSymbol(v any) bool {
	_, ok := v.(vals.Symbol)
	return ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isMap(v any) bool {
	_, ok := v.(vals.Map)
	return ok
}

func isFn(v any) bool {
	_, ok := v.(Callable)
	return ok
}

func isMacro(v any) bool {
	_, ok := v.(*Macro)
	return ok
}
