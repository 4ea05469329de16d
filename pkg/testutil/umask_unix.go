//go:build !windows && !plan9

package testutil

import "golang.org/x/sys/unix"

// Umask sets the umask for the duration of the test, and restores it
// afterwards.
func Umask(c Cleanuper, m int) {
	save := unix.Umask(m)
	c.Cleanup(func() { unix.Umask(save) })
}
