package parse

import (
	"testing"

	"github.com/zem-editor/zem/pkg/tt"
)

func TestQuote(t *testing.T) {
	tt.Test(t, tt.Fn("Quote", Quote).ArgsFmt("(%q)"), tt.Table{
		tt.Args("").Rets(`""`),
		tt.Args("plain").Rets(`"plain"`),
		// Only the reader's escape sequences are used.
		tt.Args(`a"b`).Rets(`"a\"b"`),
		tt.Args(`a\b`).Rets(`"a\\b"`),
		tt.Args("a\nb\tc\rd").Rets(`"a\nb\tc\rd"`),
		// Everything else appears as itself.
		tt.Args("héllo ; (not a comment)").Rets(`"héllo ; (not a comment)"`),
	})
}

func TestQuote_ReadsBack(t *testing.T) {
	for _, s := range []string{"", `a"b\c`, "line1\nline2", "tab\there"} {
		v, err := ReadOne(SourceText("[test]", Quote(s)))
		if err != nil {
			t.Fatalf("ReadOne(Quote(%q)) -> error %v", s, err)
		}
		if v != s {
			t.Errorf("ReadOne(Quote(%q)) -> %q", s, v)
		}
	}
}
