// Package logutil centralizes the creation of log writers. Debug logging is
// disabled by default; it is turned on for the whole process by pointing it
// at a writer or a file.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	outFile *os.File
	loggers []*log.Logger
)

// GetLogger gets a logger with the given prefix. Loggers share a
// process-wide output sink, which is initially io.Discard.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers, created or to be created,
// to the given writer.
func SetOutput(newout io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers, created or to be
// created, to the named file. The empty name disables logging.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %v: %v", fname, err)
	}
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil {
		outFile.Close()
	}
	out, outFile = file, file
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
	return nil
}
