package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names case-insensitively.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Options configures the global logger.
type Options struct {
	Program string
	Level   LogLevel
	// Dir enables the file logger when non-empty. Files always receive every level.
	Dir string
}

type Logger struct {
	mu            sync.Mutex
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
	minConsole    LogLevel
}

var globalLogger *Logger

// InitLogger sets up the console logger and, when opts.Dir is set, a
// timestamped log file for this run.
func InitLogger(opts Options) error {
	l := &Logger{
		consoleLogger: log.New(os.Stdout, prefix(opts.Program), log.LstdFlags),
		minConsole:    opts.Level,
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		name := opts.Program
		if name == "" {
			name = "arcade"
		}
		filename := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", name, time.Now().Format("2006-01-02_15-04-05")))
		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.file = file
		l.fileLogger = log.New(file, prefix(opts.Program), log.LstdFlags)
	}

	globalLogger = l
	return nil
}

// SetOutput redirects console output, used by tests.
func SetOutput(w io.Writer, level LogLevel) {
	globalLogger = &Logger{
		consoleLogger: log.New(w, "", 0),
		minConsole:    level,
	}
}

func CloseLogger() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
		globalLogger.file = nil
		globalLogger.fileLogger = nil
	}
}

func prefix(program string) string {
	if program == "" {
		return ""
	}
	return program + " "
}

func LogTrace(format string, args ...interface{}) {
	logMessage(TRACE, format, args...)
}

func LogDebug(format string, args ...interface{}) {
	logMessage(DEBUG, format, args...)
}

func LogInfo(format string, args ...interface{}) {
	logMessage(INFO, format, args...)
}

func LogWarn(format string, args ...interface{}) {
	logMessage(WARN, format, args...)
}

func LogError(format string, args ...interface{}) {
	logMessage(ERROR, format, args...)
}

func logMessage(level LogLevel, format string, args ...interface{}) {
	l := globalLogger
	if l == nil {
		return
	}

	message := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileLogger != nil {
		l.fileLogger.Println(message)
	}
	if level >= l.minConsole {
		l.consoleLogger.Println(message)
	}
}
