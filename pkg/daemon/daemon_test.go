package daemon

import (
	"fmt"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
	. "github.com/zem-editor/zem/pkg/prog/progtest"
	"github.com/zem-editor/zem/pkg/store/storetest"
	"github.com/zem-editor/zem/pkg/testutil"
)

func TestProgram_TerminatesIfCannotListen(t *testing.T) {
	setup(t)
	testutil.MustCreateEmpty("sock")

	Test(t, &Program{},
		ThatZem("-daemon", "-sock", "sock", "-db", "db").
			ExitsWith(2).
			WritesStdoutContaining("failed to listen on sock"),
	)
}

func TestProgram_ServesClientRequests(t *testing.T) {
	setup(t)
	client := startServerClientPair(t)

	// Test server state requests.
	gotVersion, err := client.Version()
	if gotVersion != Version || err != nil {
		t.Errorf(".Version() -> (%v, %v), want (%v, nil)", gotVersion, err, Version)
	}

	gotPid, err := client.Pid()
	wantPid := syscall.Getpid()
	if gotPid != wantPid || err != nil {
		t.Errorf(".Pid() -> (%v, %v), want (%v, nil)", gotPid, err, wantPid)
	}

	// Test store requests.
	storetest.TestCmd(t, client)
	storetest.TestMark(t, client)
}

func TestProgram_StillServesIfCannotOpenDB(t *testing.T) {
	setup(t)
	testutil.MustWriteFile("db", "not a valid bolt database")
	client := startServerClientPair(t)

	_, err := client.AddCmd("cmd")
	if err == nil {
		t.Errorf("got nil error, want non-nil")
	}
}

func TestProgram_BadCLI(t *testing.T) {
	Test(t, &Program{},
		ThatZem().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),

		ThatZem("-daemon", "x").
			ExitsWith(2).
			WritesStderrContaining("arguments are not allowed with -daemon"),
	)
}

func setup(t *testing.T) {
	testutil.Umask(t, 0)
	testutil.InTempDir(t)
}

func cli(sock, db string) []string {
	return []string{"zem", "-daemon", "-sock", sock, "-db", db}
}

func startServerClientPair(t *testing.T) daemondefs.Client {
	startServer(t, cli("sock", "db"))
	client, err := startClient(t, "sock")
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func startServer(t *testing.T, args []string) {
	t.Helper()
	startServerOpts(t, args, ServeOpts{})
}

func startServerOpts(t *testing.T, args []string, opts ServeOpts) {
	t.Helper()
	readyCh := make(chan struct{})
	opts.Ready = readyCh
	sigCh := make(chan os.Signal)
	opts.Signals = sigCh
	doneCh := make(chan struct{})
	go func() {
		exit, stdout, stderr := Run(&Program{serveOpts: opts}, args...)
		if exit != 0 {
			// Can't use t.Log after the test may have finished; just print.
			fmt.Println("daemon exited with", exit)
			fmt.Print("stdout:\n", stdout)
			fmt.Print("stderr:\n", stderr)
		}
		close(doneCh)
	}()
	select {
	case <-readyCh:
	case <-time.After(testutil.Scaled(2 * time.Second)):
		t.Fatal("timed out waiting for daemon to start")
	}
	t.Cleanup(func() {
		close(sigCh)
		// Wait for the server to shut down before the test's temporary
		// directory goes away, since the server removes its socket by the
		// path it was given and may resolve a relative path against the
		// wrong working directory after the test ends.
		<-doneCh
	})
}

func startClient(t *testing.T, sock string) (daemondefs.Client, error) {
	client := NewClient(sock)
	t.Cleanup(func() { client.Close() })
	start := time.Now()
	timeout := testutil.Scaled(time.Second)
	for {
		client.ResetConn()
		_, err := client.Version()
		if err == nil {
			return client, nil
		}
		if time.Since(start) > timeout {
			return nil, fmt.Errorf("failed to connect after %v: %v", timeout, err)
		}
		time.Sleep(testutil.Scaled(10 * time.Millisecond))
	}
}
