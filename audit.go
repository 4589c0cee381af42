package docmerge

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Audit entry levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// AuditLog accumulates the timestamped record of a run. Entries are written
// to the log file as they are recorded, so everything up to a mid-run crash
// survives; Close syncs the file. Entry format, one per line:
//
//	[RFC3339 timestamp] LEVEL: message
//
// A write failure is itself non-fatal: the entry is reported on the
// fallback writer (stderr) instead and the run continues.
type AuditLog struct {
	f        *os.File
	path     string
	fallback io.Writer
	now      func() time.Time
	entries  int
}

// OpenAuditLog creates (or truncates) the audit log file at path. When the
// file cannot be created the log still works, routing every entry to
// fallback.
func OpenAuditLog(path string, fallback io.Writer) (*AuditLog, error) {
	if fallback == nil {
		fallback = os.Stderr
	}
	l := &AuditLog{path: path, fallback: fallback, now: time.Now}
	f, err := os.Create(path)
	if err != nil {
		return l, fmt.Errorf("create audit log: %w", err)
	}
	l.f = f
	return l, nil
}

// Record appends one timestamped entry.
func (l *AuditLog) Record(level, format string, args ...any) {
	line := fmt.Sprintf("[%s] %s: %s\n",
		l.now().UTC().Format(time.RFC3339), level, fmt.Sprintf(format, args...))
	l.entries++

	if l.f == nil {
		fmt.Fprint(l.fallback, line)
		return
	}
	if _, err := l.f.WriteString(line); err != nil {
		fmt.Fprintf(l.fallback, "audit log write failed: %v\n", err)
		fmt.Fprint(l.fallback, line)
	}
}

// Path returns the audit log file path.
func (l *AuditLog) Path() string { return l.path }

// Entries returns the number of entries recorded so far.
func (l *AuditLog) Entries() int { return l.entries }

// Close syncs and closes the log file. Entries already written are durable
// even if a later step fails.
func (l *AuditLog) Close() error {
	if l.f == nil {
		return nil
	}
	if err := l.f.Sync(); err != nil {
		fmt.Fprintf(l.fallback, "audit log sync failed: %v\n", err)
	}
	return l.f.Close()
}
