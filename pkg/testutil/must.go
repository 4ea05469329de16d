package testutil

import (
	"io"
	"os"
)

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(someFunction(...))
//
// where someFunction returns a single error value. This is useful with
// functions like os.Mkdir to succinctly ensure the test fails to proceed if
// a "can't happen" failure does, in fact, happen.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// MustPipe calls os.Pipe and panics if it fails.
func MustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

// MustReadAllAndClose reads everything from r and closes it, panicking if
// either step fails.
func MustReadAllAndClose(r io.ReadCloser) []byte {
	bs, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	r.Close()
	return bs
}

// MustMkdirAll calls os.MkdirAll for each argument and panics if an error is
// returned.
func MustMkdirAll(names ...string) {
	for _, name := range names {
		err := os.MkdirAll(name, 0700)
		if err != nil {
			panic(err)
		}
	}
}

// MustCreateEmpty creates empty files, and panics if an error occurs.
func MustCreateEmpty(names ...string) {
	for _, name := range names {
		file, err := os.Create(name)
		if err != nil {
			panic(err)
		}
		file.Close()
	}
}

// MustWriteFile calls os.WriteFile with permission 0600 and panics if an
// error occurs.
func MustWriteFile(filename, data string) {
	err := os.WriteFile(filename, []byte(data), 0600)
	if err != nil {
		panic(err)
	}
}

// MustChdir calls os.Chdir and panics if it fails.
func MustChdir(dir string) {
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
