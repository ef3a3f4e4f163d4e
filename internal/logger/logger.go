// Package logger provides leveled, field-aware logging for bistro.
//
// The default level only shows warnings and errors. The CLI raises it to info
// with --debug and to debug with --verbose.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a configuration value to a Level
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off", "none":
		return LevelSilent, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", value)
	}
}

// Logger writes messages with attached fields. Extra args are read as
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

var (
	mu     sync.Mutex
	level  = LevelWarn
	output = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel changes the minimum level written
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current minimum level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetOutput redirects log output
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output.SetOutput(w)
}

// SetFlags sets the stdlib log flags, 0 drops timestamps
func SetFlags(flags int) {
	mu.Lock()
	defer mu.Unlock()
	output.SetFlags(flags)
}

// Configure applies the CLI verbosity switches on top of a configured level
func Configure(configured Level, debug, verbose bool) {
	switch {
	case verbose:
		SetLevel(LevelDebug)
	case debug && configured > LevelInfo:
		SetLevel(LevelInfo)
	default:
		SetLevel(configured)
	}
}

type entry struct {
	fields map[string]interface{}
}

func (e *entry) WithField(key string, value interface{}) Logger {
	return e.WithFields(map[string]interface{}{key: value})
}

func (e *entry) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &entry{fields: merged}
}

func (e *entry) Debug(msg string, keyvals ...interface{}) { e.log(LevelDebug, msg, keyvals) }
func (e *entry) Info(msg string, keyvals ...interface{})  { e.log(LevelInfo, msg, keyvals) }
func (e *entry) Warn(msg string, keyvals ...interface{})  { e.log(LevelWarn, msg, keyvals) }
func (e *entry) Error(msg string, keyvals ...interface{}) { e.log(LevelError, msg, keyvals) }

func (e *entry) log(l Level, msg string, keyvals []interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if l < level || level == LevelSilent {
		return
	}

	fields := make(map[string]interface{}, len(e.fields)+len(keyvals)/2)
	for k, v := range e.fields {
		fields[k] = v
	}
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			fields[key] = keyvals[i+1]
		} else {
			fields[key] = "(MISSING)"
		}
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(l.String()))
	b.WriteString(" ")
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	output.Print(b.String())
}

var root = &entry{}

func Debug(msg string, keyvals ...interface{}) { root.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { root.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { root.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { root.Error(msg, keyvals...) }

// WithField returns a logger carrying one field
func WithField(key string, value interface{}) Logger {
	return root.WithField(key, value)
}

// WithFields returns a logger carrying all given fields
func WithFields(fields map[string]interface{}) Logger {
	return root.WithFields(fields)
}
