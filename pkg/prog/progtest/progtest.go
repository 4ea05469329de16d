// Package progtest provides utilities for testing subprograms.
//
// This package intentionally has no dependency on other packages in pkg/,
// except prog itself, so that it can be used to test any subprogram.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/zem-editor/zem/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatZem returns a new Case with the given arguments to the zem binary.
func ThatZem(args ...string) Case {
	return Case{args: append([]string{"zem"}, args...)}
}

// WithStdin returns an altered Case that will use the given string as stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// have no expectations, for example:
//
//	ThatZem("-log", "log-file").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to
// write exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to stdout containing the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to
// write exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to stderr containing the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args[1:], " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit code %v, want %v", r.exit, c.want.exit)
			}
			if !matchOutput(c.want.stdout, r.stdout.content) {
				t.Errorf("got stdout %q, want %v", r.stdout.content, c.want.stdout)
			}
			if !matchOutput(c.want.stderr, r.stderr.content) {
				t.Errorf("got stderr %q, want %v", r.stderr.content, c.want.stderr)
			}
		})
	}
}

func matchOutput(want output, got string) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

// Run runs the program with the given command line and empty stdin, and
// returns its exit code along with what it wrote to stdout and stderr. It is
// useful for tests that need to inspect the result in ways Test does not
// support, or run the program from a goroutine.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r := run(p, args, "")
	return r.exit, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := mustPipe()
	defer r0.Close()
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()

	w1, get1 := capturedFile()
	w2, get2 := capturedFile()
	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	return result{exit, output{content: get1()}, output{content: get2()}}
}

// capturedFile returns a file to write to, and a function that closes the
// file and returns everything written to it.
func capturedFile() (*os.File, func() string) {
	r, w := mustPipe()
	contentCh := make(chan string, 1)
	go func() {
		b, err := io.ReadAll(r)
		if err != nil {
			panic(err)
		}
		r.Close()
		contentCh <- string(b)
	}()
	return w, func() string {
		w.Close()
		return <-contentCh
	}
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}
