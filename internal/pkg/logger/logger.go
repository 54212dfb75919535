package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// AppLogger wraps logrus with the application's structured JSON setup.
type AppLogger struct {
	*logrus.Logger
	file *os.File
}

var global = &AppLogger{Logger: logrus.New()}

// Init configures the global logger from config: level, JSON output and an
// optional log file alongside stdout.
func Init(cfg models.LoggerConfig) (*AppLogger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	al := &AppLogger{Logger: l}

	if cfg.FilePath != "" {
		if err := al.setupFileOutput(cfg.FilePath); err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
	}

	global = al
	return al, nil
}

func (al *AppLogger) setupFileOutput(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	al.file = file
	al.Logger.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// Close closes the log file
func (al *AppLogger) Close() error {
	if al.file != nil {
		return al.file.Close()
	}
	return nil
}

// L returns the global application logger.
func L() *AppLogger {
	return global
}

// WithFields returns an entry with the given fields on the global logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return global.Logger.WithFields(fields)
}

// WithError returns an entry with the error attached on the global logger.
func WithError(err error) *logrus.Entry {
	return global.Logger.WithError(err)
}
