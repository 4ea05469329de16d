// Package str exposes functionality from Go's strings package as a Zem Lisp
// module.
package str

import (
	"strconv"
	"strings"

	"github.com/zem-editor/zem/pkg/eval/errs"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/strutil"
)

// Fns are the functions of the str: module.
var Fns = map[string]any{
	"compare":      strings.Compare,
	"contains":     strings.Contains,
	"contains-any": strings.ContainsAny,
	"count":        strings.Count,
	"equal-fold":   strings.EqualFold,
	"fields":       strings.Fields,
	"has-prefix":   strings.HasPrefix,
	"has-suffix":   strings.HasSuffix,
	"index":        strings.Index,
	"index-any":    strings.IndexAny,
	"join":         join,
	"join-lines":   joinLines,
	"last-index":   strings.LastIndex,
	"repeat":       repeat,
	"replace":      replace,
	"split":        split,
	"split-lines":  splitLines,
	"to-lower":     strings.ToLower,
	"to-upper":     strings.ToUpper,
	"trim":         strings.Trim,
	"trim-left":    strings.TrimLeft,
	"trim-prefix":  strings.TrimPrefix,
	"trim-right":   strings.TrimRight,
	"trim-space":   strings.TrimSpace,
	"trim-suffix":  strings.TrimSuffix,
}

func join(sep string, li vals.List) (string, error) {
	var sb strings.Builder
	for i, v := range li {
		s, ok := v.(string)
		if !ok {
			return "", errs.BadType{
				What: "element of the list argument to str:join",
				Want: "string", Got: vals.Kind(v)}
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func repeat(s string, n int) (string, error) {
	// strings.Repeat panics on a negative count.
	if n < 0 {
		return "", errs.BadValue{What: "count argument to str:repeat",
			Valid: "non-negative integer", Actual: strconv.Itoa(n)}
	}
	return strings.Repeat(s, n), nil
}

func replace(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}

func split(sep, s string) vals.List {
	parts := strings.Split(s, sep)
	li := make(vals.List, len(parts))
	for i, p := range parts {
		li[i] = p
	}
	return li
}

// splitLines splits s into lines. One trailing line ending terminates the
// last line instead of starting an empty one, so reading back the output of
// join-lines gives the original list.
func splitLines(s string) vals.List {
	if s == "" {
		return vals.List{}
	}
	parts := strings.Split(strutil.ChopLineEnding(s), "\n")
	li := make(vals.List, len(parts))
	for i, p := range parts {
		li[i] = p
	}
	return li
}

func joinLines(li vals.List) (string, error) {
	lines := make([]string, len(li))
	for i, v := range li {
		s, ok := v.(string)
		if !ok {
			return "", errs.BadType{
				What: "element of the list argument to str:join-lines",
				Want: "string", Got: vals.Kind(v)}
		}
		lines[i] = s
	}
	return strutil.JoinLines(lines), nil
}
