package daemon

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zem-editor/zem/pkg/daemon/daemondefs"
)

var (
	daemonSpawnTimeout = 5 * time.Second
	daemonSpawnRetry   = 10 * time.Millisecond
)

// Activate returns a daemon client, either by connecting to an existing
// daemon, or spawning a new one. In the latter case, it only returns after
// the daemon has answered its first request. A socket file that no daemon is
// listening on (usually left over by an unclean shutdown) is removed first.
//
// It prints informational messages to stderr when it has to clean up.
func Activate(stderr io.Writer, spawnCfg *daemondefs.SpawnConfig) (daemondefs.Client, error) {
	sockpath := spawnCfg.SockPath
	cl := NewClient(sockpath)

	info, err := os.Lstat(sockpath)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("%s exists but is not a socket", sockpath)
		}
		version, err := cl.Version()
		if err == nil {
			if version != Version {
				cl.Close()
				return nil, fmt.Errorf(
					"daemon serves API version %v, want %v; remove %s and try again",
					version, Version, sockpath)
			}
			return cl, nil
		}
		// The socket file exists but nothing answers on the other end.
		// Remove the hanging socket and spawn a new daemon below.
		fmt.Fprintln(stderr, "removing hanging socket file", sockpath)
		cl.ResetConn()
		if err := os.Remove(sockpath); err != nil {
			return nil, fmt.Errorf("failed to remove hanging socket: %v", err)
		}
	case os.IsNotExist(err):
		// No daemon is running; spawn one below.
	default:
		return nil, err
	}

	if err := spawn(spawnCfg); err != nil {
		return nil, fmt.Errorf("failed to spawn daemon: %v", err)
	}
	logger.Println("spawned daemon")

	// Wait for the daemon to come up, polling the version RPC.
	deadline := time.Now().Add(daemonSpawnTimeout)
	for {
		cl.ResetConn()
		version, err := cl.Version()
		if err == nil {
			if version != Version {
				cl.Close()
				return nil, fmt.Errorf(
					"spawned daemon serves API version %v, want %v", version, Version)
			}
			return cl, nil
		}
		if time.Now().After(deadline) {
			cl.Close()
			return nil, fmt.Errorf(
				"daemon did not respond within %v: %v", daemonSpawnTimeout, err)
		}
		time.Sleep(daemonSpawnRetry)
	}
}
