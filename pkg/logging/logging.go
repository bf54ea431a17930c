package logging

import (
	"encoding/json"
	"os"
	"time"
)

// Fields carries structured key/value context for a log entry.
type Fields map[string]interface{}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Component string `json:"component"`
	Hostname  string `json:"hostname"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
}

// Logger writes structured JSON log lines to stdout.
type Logger struct {
	component string
	hostname  string
}

// New creates a logger for the named component.
func New(component string) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		component: component,
		hostname:  hostname,
	}
}

func (l *Logger) log(level, msg string, fields Fields) {
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Component: l.component,
		Hostname:  l.hostname,
		Message:   msg,
		Fields:    fields,
	}
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	os.Stdout.Write(append(data, '\n'))
}

func (l *Logger) Debug(msg string, fields Fields) { l.log("DEBUG", msg, fields) }

func (l *Logger) Info(msg string, fields Fields) { l.log("INFO", msg, fields) }

func (l *Logger) Warn(msg string, fields Fields) { l.log("WARN", msg, fields) }

func (l *Logger) Error(msg string, fields Fields) { l.log("ERROR", msg, fields) }

// Fatal logs the entry and exits the process.
func (l *Logger) Fatal(msg string, fields Fields) {
	l.log("FATAL", msg, fields)
	os.Exit(1)
}
