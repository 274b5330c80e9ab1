// Package logger owns the process-wide structured logger. Commands run for
// well under a second, so everything goes to a rotating file next to the
// storage; stderr only sees log output in debug mode.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"balanceday/internal/constants"
)

// Logger is the global instance. It stays nil until Init succeeds; the
// package-level helpers below are safe to call either way.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// Init sets up the global logger with rotation under <ConfigDir>/logs.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var writer io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, writer)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
