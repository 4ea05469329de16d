package parse

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zem-editor/zem/pkg/diag"
)

func readValues(t *testing.T, code string) []any {
	t.Helper()
	forms, err := ReadAll(SourceText("[test]", code))
	if err != nil {
		t.Fatalf("ReadAll(%q) -> error %v", code, err)
	}
	if len(forms) == 0 {
		return nil
	}
	values := make([]any, len(forms))
	for i, f := range forms {
		values[i] = f.Value
	}
	return values
}

var readAllTests = []struct {
	name string
	code string
	want []any
}{
	{"empty", "", nil},
	{"only space and comments", "  \n; nothing here\n", nil},
	{"number", "42", []any{42.0}},
	{"negative number", "-3.5", []any{-3.5}},
	{"exponent", "1e3", []any{1000.0}},
	{"leading dot", ".5", []any{0.5}},
	{"symbol", "foo", []any{Symbol("foo")}},
	{"plus and minus are symbols", "+ -", []any{Symbol("+"), Symbol("-")}},
	{"dashed symbol", "insert-text", []any{Symbol("insert-text")}},
	{"predicate symbol", "null?", []any{Symbol("null?")}},
	{"nil literal", "nil", []any{nil}},
	{"t literal", "t", []any{true}},
	{"true literal", "true", []any{true}},
	{"false literal", "false", []any{false}},
	{"string", `"hello"`, []any{"hello"}},
	{"string with escapes", `"a\"b\\c\nd\te\rf"`, []any{"a\"b\\c\nd\te\rf"}},
	{"empty list", "()", []any{[]any{}}},
	{"flat list", "(+ 1 2)", []any{[]any{Symbol("+"), 1.0, 2.0}}},
	{"nested list", "(a (b c) d)",
		[]any{[]any{Symbol("a"), []any{Symbol("b"), Symbol("c")}, Symbol("d")}}},
	{"multiple forms", "1 2 3", []any{1.0, 2.0, 3.0}},
	{"comment between forms", "1 ; one\n2", []any{1.0, 2.0}},
	{"quote sugar", "'x", []any{[]any{Symbol("quote"), Symbol("x")}}},
	{"quote list", "'(1 2)",
		[]any{[]any{Symbol("quote"), []any{1.0, 2.0}}}},
	{"quasiquote sugar", "`x", []any{[]any{Symbol("quasiquote"), Symbol("x")}}},
	{"unquote sugar", ",x", []any{[]any{Symbol("unquote"), Symbol("x")}}},
	{"unquote-splicing sugar", ",@x",
		[]any{[]any{Symbol("unquote-splicing"), Symbol("x")}}},
	{"sugar nests", "`(a ,b ,@c)",
		[]any{[]any{Symbol("quasiquote"), []any{
			Symbol("a"),
			[]any{Symbol("unquote"), Symbol("b")},
			[]any{Symbol("unquote-splicing"), Symbol("c")}}}}},
	{"quote with space", "' x", []any{[]any{Symbol("quote"), Symbol("x")}}},
	{"strings are delimiters", `a"b"`, []any{Symbol("a"), "b"}},
	{"unicode symbol", "λ", []any{Symbol("λ")}},
}

func TestReadAll(t *testing.T) {
	for _, test := range readAllTests {
		t.Run(test.name, func(t *testing.T) {
			got := readValues(t, test.code)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("ReadAll(%q) -> %v, want %v", test.code, got, test.want)
			}
		})
	}
}

var readErrorTests = []struct {
	name    string
	code    string
	wantMsg string
}{
	{"unclosed paren", "(foo", "unclosed '('"},
	{"unclosed nested paren", "(foo (bar)", "unclosed '('"},
	{"unmatched close paren", ")", "unmatched ')'"},
	{"unterminated string", `"abc`, "unterminated string"},
	{"unterminated string in escape", `"abc\`, "unterminated string"},
	{"unknown escape", `"a\x"`, `unknown escape sequence '\x'`},
	{"bad number", "1abc", `invalid number literal "1abc"`},
	{"bad signed number", "-2x", `invalid number literal "-2x"`},
	{"nothing after quote", "'", "nothing after quote"},
	{"nothing after unquote", "(a ,", "nothing after unquote"},
}

func TestReadAll_Errors(t *testing.T) {
	for _, test := range readErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadAll(SourceText("[test]", test.code))
			if err == nil {
				t.Fatalf("ReadAll(%q) -> no error", test.code)
			}
			parseErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("ReadAll(%q) -> error of type %T", test.code, err)
			}
			if parseErr.Message != test.wantMsg {
				t.Errorf("ReadAll(%q) -> message %q, want %q",
					test.code, parseErr.Message, test.wantMsg)
			}
			if !strings.Contains(parseErr.Error(), "[test]") {
				t.Errorf("error text %q does not name the source", parseErr.Error())
			}
		})
	}
}

func TestReadAll_Ranges(t *testing.T) {
	code := "  (+ 1 2)\nfoo"
	forms, err := ReadAll(SourceText("[test]", code))
	if err != nil {
		t.Fatal(err)
	}
	wantRanges := []diag.Ranging{{From: 2, To: 9}, {From: 10, To: 13}}
	for i, f := range forms {
		if f.Range() != wantRanges[i] {
			t.Errorf("form %d has range %v, want %v", i, f.Range(), wantRanges[i])
		}
	}
}

func TestReadAll_ErrorPosition(t *testing.T) {
	_, err := ReadAll(SourceText("[test]", "(a b\n"))
	parseErr := err.(*Error)
	if r := parseErr.Range(); r.From != 0 || r.To != 1 {
		t.Errorf("unclosed '(' reported at %v, want 0-1", r)
	}
}

func TestReadOne(t *testing.T) {
	v, err := ReadOne(SourceText("[test]", " (list 1) ; done\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []any{Symbol("list"), 1.0}) {
		t.Errorf("ReadOne -> %v", v)
	}

	if _, err := ReadOne(SourceText("[test]", "")); err == nil {
		t.Errorf("ReadOne on empty code -> no error")
	}
	if _, err := ReadOne(SourceText("[test]", "1 2")); err == nil {
		t.Errorf("ReadOne with trailing form -> no error")
	}
}

func TestReadAll_DeepNesting(t *testing.T) {
	code := strings.Repeat("(", maxNesting+1)
	_, err := ReadAll(SourceText("[test]", code))
	parseErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("ReadAll on deep nesting -> error %v, want *Error", err)
	}
	if parseErr.Message != "nesting too deep" {
		t.Errorf("got message %q", parseErr.Message)
	}
	// Nesting within the limit still reads fine.
	code = strings.Repeat("(", 100) + "x" + strings.Repeat(")", 100)
	if _, err := ReadAll(SourceText("[test]", code)); err != nil {
		t.Errorf("ReadAll on nesting within limit -> error %v", err)
	}
}

func TestReaderIsRestartable(t *testing.T) {
	src := SourceText("[test]", "(broken")
	if _, err := ReadAll(src); err == nil {
		t.Fatal("want error")
	}
	// A failed read must not affect a subsequent one.
	forms, err := ReadAll(SourceText("[test]", "(fine)"))
	if err != nil || len(forms) != 1 {
		t.Errorf("ReadAll after failure -> (%v, %v)", forms, err)
	}
}
