package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	verbose atomic.Bool
)

// SetOutput redirects all log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// SetVerbose forces debug output on regardless of UADMIN_DEBUG.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// DebugEnabled returns true if debug mode is enabled via the UADMIN_DEBUG
// environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("UADMIN_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write(fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write(fmt.Sprintln(args...))
	}
}

// Errorf records a failure that was handled but should stay diagnosable.
// It is written regardless of debug mode.
func Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	write("error: " + msg)
}

func write(s string) {
	mu.Lock()
	defer mu.Unlock()
	io.WriteString(out, s)
}
