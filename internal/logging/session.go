package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vqtran/devq/internal/constants"
)

// SessionLogger appends timestamped events to a log file in the
// working directory. It is best effort: the file is opened per line so
// a long-lived handle never blocks the tool, and any failure to open
// or write is swallowed. The log must never break the session it
// records.
type SessionLogger struct {
	path string
}

// NewSessionLogger creates a session logger writing under dir.
func NewSessionLogger(dir string) *SessionLogger {
	return &SessionLogger{
		path: filepath.Join(dir, constants.SessionLogFileName),
	}
}

// Path returns the location of the log file.
func (s *SessionLogger) Path() string {
	return s.path
}

// Log appends a single line: timestamp, level, message.
func (s *SessionLogger) Log(level, msg string) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "%s [%s] %s\n", timestamp, level, msg)
}

// Infof logs a formatted info event.
func (s *SessionLogger) Infof(format string, args ...interface{}) {
	s.Log("INFO", fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error event.
func (s *SessionLogger) Errorf(format string, args ...interface{}) {
	s.Log("ERROR", fmt.Sprintf(format, args...))
}
