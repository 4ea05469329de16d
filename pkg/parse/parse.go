// Package parse implements the reader that turns source code into expression
// trees.
//
// Expressions are ordinary Go values: numbers are float64, strings are
// string, booleans are bool, nil is the untyped nil, symbols are the named
// type Symbol, and lists are []any. The reader keeps no state between calls,
// so a failed read never poisons a later one.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zem-editor/zem/pkg/diag"
)

// Symbol is the identifier atom produced by the reader. Two symbols are the
// same value exactly when their names are equal.
type Symbol string

// Form is a top-level expression together with its source range.
type Form struct {
	Value any
	diag.Ranging
}

// Names of the expansion of the reader sugar characters.
const (
	symQuote           = Symbol("quote")
	symQuasiquote      = Symbol("quasiquote")
	symUnquote         = Symbol("unquote")
	symUnquoteSplicing = Symbol("unquote-splicing")
)

// ReadAll reads all top-level forms from src. It returns a non-nil *Error as
// soon as the first malformed form is found; no forms are returned in that
// case.
func ReadAll(src Source) ([]Form, error) {
	rd := &reader{name: src.Name, src: src.Code}
	var forms []Form
	for {
		rd.skipSpace()
		if rd.eof() {
			return forms, nil
		}
		value, r, err := rd.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, Form{value, r})
	}
}

// ReadOne reads exactly one form from src. Text other than whitespace and
// comments after the form is an error.
func ReadOne(src Source) (any, error) {
	rd := &reader{name: src.Name, src: src.Code}
	rd.skipSpace()
	if rd.eof() {
		return nil, rd.errorpf(diag.PointRanging(rd.pos), "nothing to read")
	}
	value, _, err := rd.readForm()
	if err != nil {
		return nil, err
	}
	rd.skipSpace()
	if !rd.eof() {
		return nil, rd.errorpf(
			diag.Ranging{From: rd.pos, To: len(rd.src)}, "text after expression")
	}
	return value, nil
}

const eof rune = -1

// Input nested deeper than this is rejected, so a pathological run of open
// parentheses cannot exhaust the Go stack.
const maxNesting = 1000

type reader struct {
	name  string
	src   string
	pos   int
	depth int
}

func (rd *reader) eof() bool {
	return rd.pos == len(rd.src)
}

func (rd *reader) peek() rune {
	if rd.eof() {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(rd.src[rd.pos:])
	return r
}

func (rd *reader) next() rune {
	if rd.eof() {
		return eof
	}
	r, size := utf8.DecodeRuneInString(rd.src[rd.pos:])
	rd.pos += size
	return r
}

// skipSpace skips whitespace and line comments.
func (rd *reader) skipSpace() {
	for {
		c := rd.peek()
		switch {
		case c == ';':
			for !rd.eof() && rd.peek() != '\n' {
				rd.next()
			}
		case c != eof && unicode.IsSpace(c):
			rd.next()
		default:
			return
		}
	}
}

// readForm reads one form. The caller has skipped leading whitespace and
// ensured there is more text to read.
func (rd *reader) readForm() (any, diag.Ranging, error) {
	if rd.depth >= maxNesting {
		r := diag.PointRanging(rd.pos)
		return nil, r, rd.errorpf(r, "nesting too deep")
	}
	rd.depth++
	defer func() { rd.depth-- }()

	begin := rd.pos
	switch c := rd.peek(); c {
	case '(':
		return rd.readList()
	case ')':
		rd.next()
		return nil, diag.Ranging{From: begin, To: rd.pos},
			rd.errorpf(diag.Ranging{From: begin, To: rd.pos}, "unmatched ')'")
	case '"':
		return rd.readString()
	case '\'':
		rd.next()
		return rd.readSugar(begin, symQuote)
	case '`':
		rd.next()
		return rd.readSugar(begin, symQuasiquote)
	case ',':
		rd.next()
		if rd.peek() == '@' {
			rd.next()
			return rd.readSugar(begin, symUnquoteSplicing)
		}
		return rd.readSugar(begin, symUnquote)
	default:
		return rd.readAtom()
	}
}

// readSugar reads the form after a sugar character and wraps it in a
// two-element list headed by sym.
func (rd *reader) readSugar(begin int, sym Symbol) (any, diag.Ranging, error) {
	rd.skipSpace()
	if rd.eof() {
		r := diag.Ranging{From: begin, To: rd.pos}
		return nil, r, rd.errorpf(r, "nothing after %s", sym)
	}
	sub, _, err := rd.readForm()
	if err != nil {
		return nil, diag.Ranging{}, err
	}
	r := diag.Ranging{From: begin, To: rd.pos}
	return []any{sym, sub}, r, nil
}

func (rd *reader) readList() (any, diag.Ranging, error) {
	begin := rd.pos
	rd.next() // consume '('
	list := []any{}
	for {
		rd.skipSpace()
		switch rd.peek() {
		case eof:
			r := diag.Ranging{From: begin, To: begin + 1}
			return nil, r, rd.errorpf(r, "unclosed '('")
		case ')':
			rd.next()
			return list, diag.Ranging{From: begin, To: rd.pos}, nil
		default:
			sub, _, err := rd.readForm()
			if err != nil {
				return nil, diag.Ranging{}, err
			}
			list = append(list, sub)
		}
	}
}

func (rd *reader) readString() (any, diag.Ranging, error) {
	begin := rd.pos
	rd.next() // consume '"'
	var sb strings.Builder
	for {
		switch c := rd.next(); c {
		case eof:
			r := diag.Ranging{From: begin, To: rd.pos}
			return nil, r, rd.errorpf(r, "unterminated string")
		case '"':
			return sb.String(), diag.Ranging{From: begin, To: rd.pos}, nil
		case '\\':
			e := rd.next()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case eof:
				r := diag.Ranging{From: begin, To: rd.pos}
				return nil, r, rd.errorpf(r, "unterminated string")
			default:
				r := diag.Ranging{From: rd.pos - 1 - utf8.RuneLen(e), To: rd.pos}
				return nil, r, rd.errorpf(r, `unknown escape sequence '\%c'`, e)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (rd *reader) readAtom() (any, diag.Ranging, error) {
	begin := rd.pos
	for !rd.eof() && !IsDelimiter(rd.peek()) {
		rd.next()
	}
	r := diag.Ranging{From: begin, To: rd.pos}
	tok := rd.src[begin:rd.pos]

	switch tok {
	case "nil":
		return nil, r, nil
	case "t", "true":
		return true, r, nil
	case "false":
		return false, r, nil
	}
	if looksLikeNumber(tok) {
		n, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, r, rd.errorpf(r, "invalid number literal %q", tok)
		}
		return n, r, nil
	}
	return Symbol(tok), r, nil
}

// looksLikeNumber reports whether the token is committed to being a number
// literal: it starts with a digit, or a sign or dot followed by a digit.
// Symbols like + and - are single-character tokens and never qualify.
func looksLikeNumber(tok string) bool {
	if tok[0] >= '0' && tok[0] <= '9' {
		return true
	}
	if len(tok) >= 2 && (tok[0] == '+' || tok[0] == '-' || tok[0] == '.') {
		c := tok[1]
		return (c >= '0' && c <= '9') || c == '.'
	}
	return false
}

// IsDelimiter reports whether c ends an atom: whitespace, parentheses, the
// sugar characters and the comment character. Tools that need to find the
// symbol under a cursor share this definition with the reader.
func IsDelimiter(c rune) bool {
	switch c {
	case '(', ')', '"', ';', '\'', '`', ',':
		return true
	}
	return unicode.IsSpace(c)
}

func (rd *reader) errorpf(r diag.Ranger, format string, args ...any) error {
	return &Error{
		Type:    "parse error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(rd.name, rd.src, r),
	}
}
