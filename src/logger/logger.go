package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// -----------------------------------------------------------------------------

// Level is the severity threshold of a logger.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLevel maps a level name to a Level. Unknown names fall back to INFO.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	case "CRITICAL":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// -----------------------------------------------------------------------------

// Logger writes every entry to both a log file and the console.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
	file   *os.File
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Logger)
)

// -----------------------------------------------------------------------------

// GetLogger returns the logger registered under name, creating it on first
// use. Creation opens filePath in append mode and attaches a file and a
// console destination; repeat calls for the same name return the existing
// logger unchanged, so log lines are never duplicated by re-attachment.
func GetLogger(name string, filePath string, level Level) (*Logger, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if l, ok := registry[name]; ok {
		return l, nil
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", filePath, err)
	}

	l := &Logger{
		name:   name,
		level:  level,
		logger: log.New(io.MultiWriter(os.Stdout, file), "", 0),
		file:   file,
	}
	registry[name] = l
	return l, nil
}

// -----------------------------------------------------------------------------

// Close releases the log file and removes the logger from the registry.
func (l *Logger) Close() error {
	registryMu.Lock()
	delete(registry, l.name)
	registryMu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("%s - %s - %s - %s", ts, l.name, level, msg)
}

// -----------------------------------------------------------------------------

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs warning messages
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(LevelWarning, format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.log(LevelCritical, format, args...)
	os.Exit(1)
}
