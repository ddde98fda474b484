// Package rvlog provides the simulator's one package-level debug
// logger, gated by an environment variable: silent by default, writing
// to a temp-dir file once enabled. Every package that wants diagnostics
// shares this one *log.Logger instead of adding its own.
package rvlog

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Log is shared by every package that wants step/trap/validator
// diagnostics. It discards output unless RV64SIM_DEBUG is set.
var Log *log.Logger

func init() {
	if os.Getenv("RV64SIM_DEBUG") == "" {
		Log = log.New(io.Discard, "", 0)
		return
	}

	logPath := filepath.Join(os.TempDir(), "rv64sim-debug.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		Log = log.New(os.Stderr, "rv64sim: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		return
	}
	Log = log.New(f, "rv64sim: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
}
