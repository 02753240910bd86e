// Package logutil provides loggers that share one output. Output is
// discarded until SetOutput or SetOutputFile is called, since the terminal
// itself is owned by the editor while it runs.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	file    *os.File
	loggers []*log.Logger
)

// GetLogger returns a logger with the given prefix writing to the shared
// output.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, l)
	return l
}

// SetOutput redirects every logger obtained from GetLogger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(w)
}

func setOutput(w io.Writer) {
	if file != nil && w != io.Writer(file) {
		file.Close()
		file = nil
	}
	out = w
	for _, l := range loggers {
		l.SetOutput(w)
	}
}

// SetOutputFile appends every logger's output to the named file. An empty
// name discards output again.
func SetOutputFile(name string) error {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		setOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	setOutput(f)
	file = f
	return nil
}
