package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var severity = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

var (
	mu          sync.Mutex
	globalLevel = LogLevelInfo
	out         io.Writer = os.Stdout
)

// SetGlobalLevel sets the level picked up by loggers created afterwards.
// Unknown values fall back to info.
func SetGlobalLevel(level string) {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if _, ok := severity[l]; !ok {
		l = LogLevelInfo
	}
	mu.Lock()
	globalLevel = l
	mu.Unlock()
}

// SetOutput redirects all loggers. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

type Log struct {
	level     LogLevel
	component string
	err       error
}

func New() *Log {
	mu.Lock()
	defer mu.Unlock()
	return &Log{level: globalLevel}
}

// Named returns a logger whose lines are tagged with component.
func Named(component string) *Log {
	l := New()
	l.component = component
	return l
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, component: l.component, err: err}
}

func (l *Log) enabled(level LogLevel) bool {
	return severity[level] >= severity[l.level]
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) print(color, icon, msg string) {
	tag := ""
	if l.component != "" {
		tag = "[" + l.component + "] "
	}
	line := fmt.Sprintf("%s[%s]%s %s %s%s", color, l.timestamp(), ColorReset, icon, tag, msg)
	if l.err != nil {
		line += fmt.Sprintf(": %v", l.err)
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, line+ColorReset)
}

func (l *Log) Debug(msg string) {
	if !l.enabled(LogLevelDebug) {
		return
	}
	l.print(ColorCyan, "🔎", msg)
}

func (l *Log) Info(msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.print(ColorBlue, "ℹ️ ", msg)
}

// Success is an info line rendered in green.
func (l *Log) Success(msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.print(ColorGreen, "✅", msg)
}

func (l *Log) Warn(msg string) {
	if !l.enabled(LogLevelWarn) {
		return
	}
	l.print(ColorYellow, "⚠️ ", msg)
}

func (l *Log) Error(msg string) {
	l.print(ColorRed, "❌", msg)
}
