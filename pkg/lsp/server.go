package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/zem-editor/zem/pkg/diag"
	"github.com/zem-editor/zem/pkg/eval"
	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// server answers requests against the most recently pushed content of each
// document. Completion and hover consult a private evaluator, so they know
// the builtins, the special forms and the prelude, but nothing the documents
// define; documents are never evaluated.
type server struct {
	evaler  *eval.Evaler
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{eval.NewEvaler(), make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"textDocument/didClose": noop,
		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when the server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var rawParams json.RawMessage
		if req.Params != nil {
			rawParams = *req.Params
		}
		return fn(ctx, conn, rawParams)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes the full text since the server only advertises
	// support for that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	start, end := symbolStart(content, dot), symbolEnd(content, dot)
	if start == end {
		return lsp.Hover{}, nil
	}
	text := hoverText(s.evaler, content[start:end])
	if text == "" {
		return lsp.Hover{}, nil
	}
	rng := lsp.Range{
		Start: lspPositionFromIdx(content, start),
		End:   lspPositionFromIdx(content, end),
	}
	return lsp.Hover{
		Contents: []lsp.MarkedString{lsp.RawMarkedString(text)},
		Range:    &rng,
	}, nil
}

// hoverText builds the hover content for a name: the kind of the thing it is
// bound to, plus the docstring if the definition carries one.
func hoverText(ev *eval.Evaler, name string) string {
	if eval.IsSpecialForm(name) {
		return name + ": special form"
	}
	v, err := ev.Global().Lookup(name)
	if err != nil {
		return ""
	}
	header := name + ": " + vals.Kind(v)
	switch v := v.(type) {
	case *eval.Closure:
		if v.Doc != "" {
			return header + "\n\n" + v.Doc
		}
	case *eval.Macro:
		if v.Fn.Doc != "" {
			return header + "\n\n" + v.Fn.Doc
		}
	}
	return header
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	start := symbolStart(content, dot)
	seed := content[start:dot]
	lspRange := lsp.Range{
		Start: lspPositionFromIdx(content, start),
		End:   lspPositionFromIdx(content, dot),
	}

	items := []lsp.CompletionItem{}
	add := func(name string, kind lsp.CompletionItemKind) {
		if !strings.HasPrefix(name, seed) {
			return
		}
		items = append(items, lsp.CompletionItem{
			Label:    name,
			Kind:     kind,
			TextEdit: &lsp.TextEdit{Range: lspRange, NewText: name},
		})
	}
	for _, name := range eval.SpecialFormNames() {
		add(name, lsp.CIKKeyword)
	}
	for _, name := range s.evaler.Global().Names() {
		add(name, completionKind(s.evaler, name))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items, nil
}

// completionKind guesses at an item kind: functions complete as functions,
// macros as keywords and everything else as a variable.
func completionKind(ev *eval.Evaler, name string) lsp.CompletionItemKind {
	v, err := ev.Global().Lookup(name)
	if err != nil {
		return lsp.CIKVariable
	}
	switch v.(type) {
	case eval.Callable:
		return lsp.CIKFunction
	case *eval.Macro:
		return lsp.CIKKeyword
	}
	return lsp.CIKVariable
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.ReadAll(parse.Source{Name: string(uri), Code: content})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	// The reader stops at the first malformed form, so there is at most one
	// diagnostic per push.
	var parseErr *parse.Error
	if !errors.As(err, &parseErr) {
		return []lsp.Diagnostic{{
			Severity: lsp.Error, Source: "parse", Message: err.Error(),
		}}
	}
	return []lsp.Diagnostic{{
		Range:    lspRangeFromRange(content, parseErr),
		Severity: lsp.Error,
		Source:   "parse",
		Message:  parseErr.Message,
	}}
}

// symbolStart returns the index at which the symbol fragment ending at dot
// begins. The fragment may be empty.
func symbolStart(s string, dot int) int {
	start := dot
	for start > 0 {
		r, sz := utf8.DecodeLastRuneInString(s[:start])
		if parse.IsDelimiter(r) {
			break
		}
		start -= sz
	}
	return start
}

// symbolEnd returns the index at which the symbol fragment starting at dot
// ends. The fragment may be empty.
func symbolEnd(s string, dot int) int {
	end := dot
	for end < len(s) {
		r, sz := utf8.DecodeRuneInString(s[end:])
		if parse.IsDelimiter(r) {
			break
		}
		end += sz
	}
	return end
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
// Positions count in UTF-16 units, like the rest of the protocol.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
