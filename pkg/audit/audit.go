// Package audit emits structured audit events for authentication attempts
// and acronym mutations as RFC5424-style log lines.
package audit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityError   Severity = 3
	SeverityWarning Severity = 4
	SeverityNotice  Severity = 5
	SeverityInfo    Severity = 6
)

// facilityAuthPriv is the syslog facility for authorization messages.
const facilityAuthPriv = 10

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
}

// Logger writes audit events as syslog-formatted lines.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	appName  string
	pid      int
}

// NewLogger creates an audit logger writing to w.
func NewLogger(w io.Writer) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   w,
		hostname: hostname,
		appName:  "til",
		pid:      os.Getpid(),
	}
}

// defaultLogger writes to stderr, matching the process log stream.
var defaultLogger = NewLogger(os.Stderr)

// Default returns the process-wide audit logger.
func Default() *Logger {
	return defaultLogger
}

// Log emits one event. Emission is best-effort: write errors are dropped so
// auditing never fails a request.
func (l *Logger) Log(event Event) {
	priority := facilityAuthPriv*8 + int(event.Severity())
	line := fmt.Sprintf(
		"<%d>1 %s %s %s %d %s - %s\n",
		priority,
		time.Now().UTC().Format(time.RFC3339),
		l.hostname,
		l.appName,
		l.pid,
		event.MessageID(),
		event.Message(),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}
