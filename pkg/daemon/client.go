package daemon

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
	"github.com/zem-editor/zem/pkg/store/storedefs"
)

// NewClient creates a new client to the storage daemon serving on the given
// socket path. The connection is established lazily on the first call and
// may be dropped with ResetConn.
func NewClient(sockPath string) daemondefs.Client {
	return &client{sockPath: sockPath}
}

type client struct {
	sockPath string

	mu   sync.Mutex
	conn *jsonrpc2.Conn
}

// noopHandler ignores requests from the server; the daemon never sends any.
type noopHandler struct{}

func (noopHandler) Handle(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) {}

func (c *client) connection() (*jsonrpc2.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	netConn, err := net.Dial("unix", c.sockPath)
	if err != nil {
		return nil, err
	}
	c.conn = jsonrpc2.NewConn(context.Background(),
		jsonrpc2.NewBufferedStream(netConn, jsonrpc2.VarintObjectCodec{}),
		noopHandler{})
	return c.conn, nil
}

func (c *client) call(method string, params, result any) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}
	err = conn.Call(context.Background(), method, params, result)
	return convertClientError(err)
}

// convertClientError restores well-known store errors, which cross the RPC
// boundary as plain messages.
func convertClientError(err error) error {
	rpcErr, ok := err.(*jsonrpc2.Error)
	if !ok {
		return err
	}
	switch rpcErr.Message {
	case storedefs.ErrNoMatchingCmd.Error():
		return storedefs.ErrNoMatchingCmd
	case storedefs.ErrNoMark.Error():
		return storedefs.ErrNoMark
	}
	return errors.New(rpcErr.Message)
}

// SockPath returns the socket path the client connects to.
func (c *client) SockPath() string { return c.sockPath }

// ResetConn drops the current connection, if any. The next call
// re-establishes it.
func (c *client) ResetConn() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil
	return conn.Close()
}

// Close waits for all outstanding requests to finish and closes the
// connection.
func (c *client) Close() error {
	return c.ResetConn()
}

func (c *client) Version() (int, error) {
	var version int
	err := c.call("version", nil, &version)
	return version, err
}

func (c *client) Pid() (int, error) {
	var pid int
	err := c.call("pid", nil, &pid)
	return pid, err
}

func (c *client) NextCmdSeq() (int, error) {
	var seq int
	err := c.call("nextCmdSeq", nil, &seq)
	return seq, err
}

func (c *client) AddCmd(text string) (int, error) {
	var seq int
	err := c.call("addCmd", &cmdRequest{Text: text}, &seq)
	return seq, err
}

func (c *client) DelCmd(seq int) error {
	return c.call("delCmd", &cmdRequest{Seq: seq}, nil)
}

func (c *client) Cmd(seq int) (string, error) {
	var text string
	err := c.call("cmd", &cmdRequest{Seq: seq}, &text)
	return text, err
}

func (c *client) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	err := c.call("cmdsWithSeq", &cmdRequest{From: from, Upto: upto}, &cmds)
	return cmds, err
}

func (c *client) NextCmd(from int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := c.call("nextCmd", &cmdRequest{From: from, Prefix: prefix}, &cmd)
	return cmd, err
}

func (c *client) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := c.call("prevCmd", &cmdRequest{Upto: upto, Prefix: prefix}, &cmd)
	return cmd, err
}

func (c *client) SetMark(path string, line, col int) error {
	return c.call("setMark", &markRequest{Path: path, Line: line, Col: col}, nil)
}

func (c *client) Mark(path string) (storedefs.Mark, error) {
	var m storedefs.Mark
	err := c.call("mark", &markRequest{Path: path}, &m)
	return m, err
}

func (c *client) DelMark(path string) error {
	return c.call("delMark", &markRequest{Path: path}, nil)
}

func (c *client) Marks() ([]storedefs.Mark, error) {
	var marks []storedefs.Mark
	err := c.call("marks", nil, &marks)
	return marks, err
}
