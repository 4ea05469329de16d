package vals

import (
	"testing"

	. "github.com/zem-editor/zem/pkg/tt"
)

type customKinder struct{}

func (customKinder) Kind() string { return "custom" }

func TestKind(t *testing.T) {
	Test(t, Fn("Kind", Kind), Table{
		Args(nil).Rets("nil"),
		Args(true).Rets("bool"),
		Args(false).Rets("bool"),
		Args(2.0).Rets("number"),
		Args("text").Rets("string"),
		Args(Symbol("text")).Rets("symbol"),
		Args(List{}).Rets("list"),
		Args(EmptyMap).Rets("map"),
		Args(customKinder{}).Rets("custom"),
		Args(int32(0)).Rets("!!int32"),
	})
}

func TestBool(t *testing.T) {
	Test(t, Fn("Bool", Bool), Table{
		Args(nil).Rets(false),
		Args(false).Rets(false),
		Args(true).Rets(true),
		// Everything else is true, including zero and empty values.
		Args(0.0).Rets(true),
		Args("").Rets(true),
		Args(List{}).Rets(true),
		Args(EmptyMap).Rets(true),
		Args(Symbol("nil")).Rets(true),
	})
}
