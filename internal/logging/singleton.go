package logging

import (
	"io"
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex

	discard = NewWriterLogger(io.Discard, LevelError, false)
)

// InitLogger builds the process-wide logger from config.
// Calling it again replaces the previous instance and closes its file.
func InitLogger(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = logger
	return nil
}

// GetLogger returns the process-wide logger.
// Before InitLogger is called it returns a logger that discards everything.
func GetLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return discard
	}
	return instance
}
