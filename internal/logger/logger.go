package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
	log     = newLogrus(io.Discard)
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

func newLogrus(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// DefaultPath returns ~/.config/karu/karu.log (or the platform equivalent).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot get config directory: %w", err)
	}
	return filepath.Join(configDir, "karu", "karu.log"), nil
}

// Init opens the log file at path, or DefaultPath when path is empty.
func Init(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	// Rotate once the file outgrows maxLogSize
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		oldPath := path + ".old"
		os.Remove(oldPath)
		os.Rename(path, oldPath)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	log.SetOutput(file)
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	log.SetOutput(io.Discard)
}

// SetOutput redirects log lines to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// SetDebug toggles debug-level output.
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Error logs an error message
func Error(format string, args ...any) {
	write(logrus.ErrorLevel, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	write(logrus.WarnLevel, format, args...)
}

func Info(format string, args ...any) {
	write(logrus.InfoLevel, format, args...)
}

func Debug(format string, args ...any) {
	write(logrus.DebugLevel, format, args...)
}

func write(level logrus.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	log.Logf(level, format, args...)
}
