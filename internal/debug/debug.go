// Package debug provides an opt-in file logger for diagnostics.
//
// The interactive program owns stdout, so nothing is printed while it runs.
// When a log path is configured every significant event is appended to that
// file instead. When disabled (the default), all logging functions are no-ops.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	logger   *log.Logger
	logFile  *os.File
	loggerMu sync.RWMutex
)

// Init opens path for appending and routes all Log calls to it. Calling Init
// again while a logger is active is a no-op.
func Init(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger != nil {
		return nil
	}

	l := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	f, err := tea.LogToFileWith(path, "stackq", l)
	if err != nil {
		return fmt.Errorf("debug: open log %s: %w", path, err)
	}
	logger = l
	logFile = f
	logger.Printf("[%-8s] log opened pid=%d", "debug", os.Getpid())
	return nil
}

// Close flushes and closes the debug log. Safe to call when not initialized.
func Close() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		return
	}
	logger.Printf("[%-8s] log closed", "debug")
	_ = logFile.Close()
	logger = nil
	logFile = nil
}

// Enabled returns true if the debug logger is active.
func Enabled() bool {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger != nil
}

func Log(component, msg string) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return
	}
	l.Printf("[%-8s] %s", component, msg)
}

func Logf(component, format string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return
	}
	l.Printf("[%-8s] %s", component, fmt.Sprintf(format, args...))
}

// LogKV writes a line with key-value context pairs.
// Usage: debug.LogKV("api", "search questions", "items", 20)
func LogKV(component, msg string, kvs ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(kvs); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kvs[i], kvs[i+1])
	}
	l.Printf("[%-8s] %s", component, b.String())
}
