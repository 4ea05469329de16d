package daemon

import (
	"io"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
	"github.com/zem-editor/zem/pkg/testutil"
)

func TestActivate_ConnectsToExistingServer(t *testing.T) {
	setup(t)
	startServer(t, cli("sock", "db"))
	cl, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: "sock", RunDir: "."})
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	closeClient(t, cl)
}

func TestActivate_SpawnsNewServer(t *testing.T) {
	activated := 0
	setupForActivate(t, func(name string, argv []string, attr *os.ProcAttr) (*os.Process, error) {
		startServer(t, argv)
		activated++
		return nil, nil
	})

	cl, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: "sock", RunDir: "."})
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	if activated != 1 {
		t.Errorf("got activated %v times, want 1", activated)
	}
	closeClient(t, cl)
}

func TestActivate_RemovesHangingSocketAndSpawnsNewServer(t *testing.T) {
	activated := 0
	setupForActivate(t, func(name string, argv []string, attr *os.ProcAttr) (*os.Process, error) {
		startServer(t, argv)
		activated++
		return nil, nil
	})
	makeHangingUnixSocket(t, "sock")

	cl, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: "sock", RunDir: "."})
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	if activated != 1 {
		t.Errorf("got activated %v times, want 1", activated)
	}
	closeClient(t, cl)
}

func TestActivate_FailsIfServerHasWrongVersion(t *testing.T) {
	setup(t)
	version := Version + 1
	startServerOpts(t, cli("sock", "db"), ServeOpts{Version: &version})
	_, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: "sock", RunDir: "."})
	if err == nil || !strings.Contains(err.Error(), "API version") {
		t.Errorf("got error %v, want version mismatch error", err)
	}
}

func TestActivate_FailsIfCannotStatSock(t *testing.T) {
	setup(t)
	// POSIX lstat(2) returns ENOTDIR instead of ENOENT if a path prefix is
	// not a directory, giving an error for which os.IsNotExist is false.
	testutil.MustCreateEmpty("not-dir")
	badSockPath := "not-dir/sock"

	_, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: badSockPath, RunDir: "."})
	if err == nil {
		t.Errorf("got error nil, want non-nil")
	}
}

func TestActivate_FailsIfSockExistsButIsNotASocket(t *testing.T) {
	activated := 0
	setupForActivate(t, func(name string, argv []string, attr *os.ProcAttr) (*os.Process, error) {
		activated++
		return nil, nil
	})
	testutil.MustCreateEmpty("sock")

	_, err := Activate(io.Discard,
		&daemondefs.SpawnConfig{DbPath: "db", SockPath: "sock", RunDir: "."})
	if err == nil {
		t.Errorf("got error nil, want non-nil")
	}
	if activated != 0 {
		t.Errorf("got activated %v times, want 0", activated)
	}
	if _, err := os.Lstat("sock"); err != nil {
		t.Errorf("sock was removed, want it left intact")
	}
}

func setupForActivate(t *testing.T, f func(string, []string, *os.ProcAttr) (*os.Process, error)) {
	setup(t)

	testutil.Set(t, &startProcess, f)
	scaleDuration(t, &daemonSpawnTimeout)
	scaleDuration(t, &daemonSpawnRetry)
}

func scaleDuration(t *testing.T, d *time.Duration) {
	testutil.Set(t, d, testutil.Scaled(*d))
}

func closeClient(t *testing.T, cl daemondefs.Client) {
	t.Helper()
	if cl != nil {
		t.Cleanup(func() { cl.Close() })
	}
}

func makeHangingUnixSocket(t *testing.T, path string) {
	t.Helper()

	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	// We need to call l.Close() to make the socket hang, but that will
	// helpfully remove the socket file. Work around this by renaming the
	// socket file.
	err = os.Rename(path, path+".save")
	if err != nil {
		t.Fatal(err)
	}
	l.Close()
	err = os.Rename(path+".save", path)
	if err != nil {
		t.Fatal(err)
	}
}
