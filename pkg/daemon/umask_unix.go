//go:build !windows && !plan9

package daemon

import "golang.org/x/sys/unix"

// The daemon creates the database and the socket file; none of them should
// be readable by other users.
func setUmaskForDaemon() { unix.Umask(0o077) }
