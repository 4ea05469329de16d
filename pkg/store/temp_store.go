package store

import (
	"fmt"
	"os"
)

// MustTempStore returns a Store backed by a temporary file, and a cleanup
// function that should be called when the Store is no longer used.
func MustTempStore() (DBStore, func()) {
	f, err := os.CreateTemp("", "zem.test")
	if err != nil {
		panic(fmt.Sprintf("failed to open temp file: %v", err))
	}
	st, err := NewStore(f.Name())
	if err != nil {
		panic(fmt.Sprintf("failed to create Store instance: %v", err))
	}
	return st, func() {
		st.Close()
		f.Close()
		if err := os.Remove(f.Name()); err != nil {
			fmt.Fprintln(os.Stderr, "failed to remove temp file:", err)
		}
	}
}
