package daemon

import (
	"context"
	"encoding/json"
	"syscall"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/zem-editor/zem/pkg/store/storedefs"
)

// Request payloads. One struct per group keeps the wire format obvious; the
// zero value of an unused field is simply omitted.
type cmdRequest struct {
	Seq    int    `json:"seq,omitempty"`
	From   int    `json:"from,omitempty"`
	Upto   int    `json:"upto,omitempty"`
	Text   string `json:"text,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

type markRequest struct {
	Path string `json:"path"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

// service implements the daemon side of the RPC methods.
type service struct {
	version int
	store   storedefs.Store
	err     error
}

func (s *service) handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "version":
		return s.version, nil
	case "pid":
		return syscall.Getpid(), nil
	}

	// The remaining methods need a working store.
	if s.err != nil {
		return nil, s.err
	}

	switch req.Method {
	case "nextCmdSeq":
		return s.store.NextCmdSeq()
	case "addCmd":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.AddCmd(q.Text)
	case "delCmd":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return nil, s.store.DelCmd(q.Seq)
	case "cmd":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.Cmd(q.Seq)
	case "cmdsWithSeq":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.CmdsWithSeq(q.From, q.Upto)
	case "nextCmd":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.NextCmd(q.From, q.Prefix)
	case "prevCmd":
		var q cmdRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.PrevCmd(q.Upto, q.Prefix)
	case "setMark":
		var q markRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return nil, s.store.SetMark(q.Path, q.Line, q.Col)
	case "mark":
		var q markRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return s.store.Mark(q.Path)
	case "delMark":
		var q markRequest
		if err := unmarshalParams(req, &q); err != nil {
			return nil, err
		}
		return nil, s.store.DelMark(q.Path)
	case "marks":
		return s.store.Marks()
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: "method not found: " + req.Method,
	}
}

func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: "missing params",
		}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: err.Error(),
		}
	}
	return nil
}
