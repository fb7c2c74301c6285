package logging

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ANSI color codes for terminal output
const (
	colorRed    = "\033[97;41m" // White text on red background
	colorGreen  = "\033[97;42m" // White text on green background
	colorYellow = "\033[90;43m" // Black text on yellow background
	colorBlue   = "\033[97;44m" // White text on blue background
	colorCyan   = "\033[97;46m" // White text on cyan background
	colorReset  = "\033[0m"
)

// Log levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

type Logger struct {
	*log.Logger
	writer      io.Closer
	minRank     int
	logRequests bool
}

func NewLogger(config *Config) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	// Expand home directory in log file path
	logFile := config.File
	if strings.HasPrefix(logFile, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		logFile = filepath.Join(homeDir, logFile[2:])
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Set up log rotation
	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    config.MaxSize, // MB
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge, // days
		Compress:   true,
	}

	logger := NewWriterLogger(io.MultiWriter(writer, os.Stdout), config.Level, config.LogRequests)
	logger.writer = writer
	return logger, nil
}

// NewWriterLogger builds a logger without file rotation, used by tests and the CLI
func NewWriterLogger(w io.Writer, level string, logRequests bool) *Logger {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &Logger{
		Logger:      log.New(w, "", log.LstdFlags),
		minRank:     rank,
		logRequests: logRequests,
	}
}

func (l *Logger) Close() error {
	if l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

func (l *Logger) enabled(level string) bool {
	return levelRank[level] >= l.minRank
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.enabled(LevelDebug) {
		return
	}
	l.Printf(colorBlue+"[DEBUG]"+colorReset+" "+format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	if !l.enabled(LevelInfo) {
		return
	}
	l.Printf(colorGreen+"[INFO]"+colorReset+" "+format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	if !l.enabled(LevelWarn) {
		return
	}
	l.Printf(colorYellow+"[WARN]"+colorReset+" "+format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.Printf(colorRed+"[ERROR]"+colorReset+" "+format, v...)
}

// FormatHTTPMethod returns a colored string based on the HTTP method
func (l *Logger) FormatHTTPMethod(method string) string {
	var color string
	switch method {
	case http.MethodGet:
		color = colorBlue
	case http.MethodPost:
		color = colorCyan
	case http.MethodPut, http.MethodPatch:
		color = colorYellow
	case http.MethodDelete:
		color = colorRed
	default:
		color = colorBlue
	}
	return fmt.Sprintf("%s %s %s", color, method, colorReset)
}

// FormatHTTPStatus returns a colored string based on the status code
func (l *Logger) FormatHTTPStatus(status int) string {
	var color string
	switch {
	case status >= 500:
		color = colorRed
	case status >= 400:
		color = colorYellow
	case status >= 300:
		color = colorCyan
	case status >= 200:
		color = colorGreen
	default:
		color = colorBlue
	}
	return fmt.Sprintf("%s %d %s", color, status, colorReset)
}

// LogHTTPRequest logs an HTTP request with colored output
func (l *Logger) LogHTTPRequest(method, path, clientIP, requestID string, status, bytes int, latency string) {
	if !l.logRequests {
		return
	}

	l.Printf("[HTTP] %s | %15s | %-17s | %s | %s | %d bytes | %s",
		l.FormatHTTPStatus(status),
		clientIP,
		l.FormatHTTPMethod(method),
		path,
		requestID,
		bytes,
		latency,
	)
}

// LogHTTPError logs a failed request. Server errors are always logged,
// client errors only when request logging is on.
func (l *Logger) LogHTTPError(method, path, clientIP string, status int, message string, err error) {
	if status < http.StatusInternalServerError && !l.logRequests {
		return
	}

	l.Printf("[HTTP-ERROR] %s | %15s | %-17s | %s | %s: %v",
		l.FormatHTTPStatus(status),
		clientIP,
		l.FormatHTTPMethod(method),
		path,
		message,
		err,
	)
}
