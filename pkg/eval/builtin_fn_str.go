package eval

import (
	"io"
	"strings"

	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/parse"
)

// String conversion and output.

func init() {
	addBuiltinFns(map[string]any{
		"str":         strFn,
		"to-string":   vals.ToString,
		"repr":        vals.Repr,
		"print":       printFn,
		"println":     printlnFn,
		"read-string": readString,
	})
}

func strFn(args ...any) string {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(vals.ToString(a))
	}
	return sb.String()
}

func printFn(fm *Frame, args ...any) error {
	return fprintValues(fm, "", args)
}

func printlnFn(fm *Frame, args ...any) error {
	return fprintValues(fm, "\n", args)
}

func fprintValues(fm *Frame, suffix string, args []any) error {
	out := fm.Evaler.output()
	for i, a := range args {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, vals.ToString(a)); err != nil {
			return err
		}
	}
	if suffix != "" {
		if _, err := io.WriteString(out, suffix); err != nil {
			return err
		}
	}
	return nil
}

// readString parses one expression from a string and returns it as data,
// without evaluating it.
func readString(code string) (any, error) {
	return parse.ReadOne(parse.SourceText("[read-string]", code))
}
