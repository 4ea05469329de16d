package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zem-editor/zem/pkg/parse"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the value.
	Repr() string
}

// Repr returns a string that represents the value. For the reader's own
// types (numbers, strings, booleans, nil, symbols and lists) the result
// reads back as an equal value; maps print as a call to the hash-map
// builtin, which also reads back when the keys and values do. Other types
// print as an opaque form that does not read back.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return parse.Quote(v)
	case Symbol:
		return string(v)
	case List:
		elems := make([]string, len(v))
		for i, e := range v {
			elems[i] = Repr(e)
		}
		return "(" + strings.Join(elems, " ") + ")"
	case Map:
		var sb strings.Builder
		sb.WriteString("(hash-map")
		for it := v.Iterator(); it.HasElem(); it.Next() {
			k, ev := it.Elem()
			sb.WriteString(" " + Repr(k) + " " + Repr(ev))
		}
		sb.WriteString(")")
		return sb.String()
	case Reprer:
		return v.Repr()
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}

// ToString converts a value to its display form: strings are returned as
// they are, without quoting, and every other value renders like Repr.
func ToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Repr(v)
}

// formatNumber renders integral floats without a decimal point, so (+ 1 2)
// prints as 3 rather than 3.0.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
