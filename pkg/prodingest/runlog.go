package prodingest

import (
	"fmt"
	"strings"
)

// RunLog aggregates the ordered human-readable entries of one invocation.
// It is the single deliverable log string the entry point returns.
type RunLog struct {
	entries []string
}

// NewRunLog creates an empty run log.
func NewRunLog() *RunLog {
	return &RunLog{}
}

// Add appends a formatted entry.
func (l *RunLog) Add(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Error appends a formatted entry flagged as an error.
func (l *RunLog) Error(format string, args ...any) {
	l.entries = append(l.entries, "ERROR: "+fmt.Sprintf(format, args...))
}

// Len returns the number of entries.
func (l *RunLog) Len() int {
	return len(l.entries)
}

// String joins all entries with newlines in insertion order.
func (l *RunLog) String() string {
	return strings.Join(l.entries, "\n")
}
