package clickhouse

import (
	"io"
	"log"
	"os"
)

// logger is the package-level diagnostics logger, overridable via
// SetLogger the way database/sql drivers expose an errLog (§9 AMBIENT
// STACK). No code path in this package writes to it.
var logger = log.New(os.Stderr, "[clickhouse] ", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogger replaces the package logger. Passing a logger writing to
// io.Discard silences all output.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.New(io.Discard, "", 0)
		return
	}
	logger = l
}
