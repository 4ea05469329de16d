package vals

import (
	"fmt"
	"math"
	"reflect"
)

// WrongType is returned by ScanToGo if the source value cannot be converted
// to the target type.
type WrongType struct {
	Want string
	Got  string
}

// Error implements the error interface.
func (err WrongType) Error() string {
	return fmt.Sprintf("wrong type: need %s, got %s", err.Want, err.Got)
}

// ScanToGo converts a runtime value to a Go value, storing the result in
// *ptr. It supports the native Go types behind the value model plus int,
// which additionally requires the number to be integral. Scanning into a
// bool applies the truthiness rule rather than requiring an actual boolean.
// A pointer to a concrete or interface type that the source value already
// satisfies is filled by plain assignment.
func ScanToGo(src any, ptr any) error {
	switch ptr := ptr.(type) {
	case *int:
		f, ok := src.(float64)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return WrongType{"integer", Kind(src)}
		}
		*ptr = int(f)
		return nil
	case *float64:
		f, ok := src.(float64)
		if !ok {
			return WrongType{"number", Kind(src)}
		}
		*ptr = f
		return nil
	case *string:
		s, ok := src.(string)
		if !ok {
			return WrongType{"string", Kind(src)}
		}
		*ptr = s
		return nil
	case *Symbol:
		sym, ok := src.(Symbol)
		if !ok {
			return WrongType{"symbol", Kind(src)}
		}
		*ptr = sym
		return nil
	case *bool:
		*ptr = Bool(src)
		return nil
	case *List:
		l, ok := src.(List)
		if !ok {
			return WrongType{"list", Kind(src)}
		}
		*ptr = l
		return nil
	case *Map:
		m, ok := src.(Map)
		if !ok {
			return WrongType{"map", Kind(src)}
		}
		*ptr = m
		return nil
	case *any:
		*ptr = src
		return nil
	default:
		ptrType := reflect.TypeOf(ptr)
		if ptrType == nil || ptrType.Kind() != reflect.Ptr {
			return fmt.Errorf("internal bug: need pointer to scan to, got %T", ptr)
		}
		dstType := ptrType.Elem()
		if src == nil {
			// A nil callable or suchlike would only defer the failure to
			// call time, as a panic.
			return WrongType{kindForType(dstType), "nil"}
		}
		if reflect.TypeOf(src).AssignableTo(dstType) {
			reflect.ValueOf(ptr).Elem().Set(reflect.ValueOf(src))
			return nil
		}
		return WrongType{kindForType(dstType), Kind(src)}
	}
}

// FromGo converts a Go value to a runtime value. Integer types widen to
// float64 and []string becomes a List; values already in the value model
// pass through unchanged.
func FromGo(v any) any {
	switch v := v.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case []string:
		l := make(List, len(v))
		for i, s := range v {
			l[i] = s
		}
		return l
	default:
		return v
	}
}

// kindForType gives the language-level name for a Go target type, for use
// in type errors.
func kindForType(t reflect.Type) string {
	switch t.String() {
	case "eval.Callable":
		return "function"
	}
	return t.String()
}
