package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar controls logging verbosity. When unset or empty, logging is
// silent (no zap output). Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CATENA_LOG_LEVEL"

// LogFileEnvVar overrides the log destination. The console owns stdout while
// it runs, so logs always go to a file, never the terminal.
const LogFileEnvVar = "CATENA_LOG_FILE"

const defaultLogFile = "catena-console.log"

// Initialize creates a new logger with the specified level, writing to path.
// CATENA_LOG_LEVEL overrides level when set; with neither, logging is
// disabled (silent mode). CATENA_LOG_FILE overrides path, falling back to
// catena-console.log in the working directory.
func Initialize(level, path string) error {
	if env := os.Getenv(LogLevelEnvVar); env != "" {
		level = env
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	if env := os.Getenv(LogFileEnvVar); env != "" {
		path = env
	}
	if path == "" {
		path = defaultLogFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the CATENA_LOG_LEVEL and
// CATENA_LOG_FILE environment variables. This is the recommended way to
// initialize logging for commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAction logs the outcome of a menu action dispatch.
func LogAction(name string, err error) {
	if err != nil {
		Error("Action failed",
			zap.String("action", name),
			zap.Error(err),
		)
		return
	}
	Debug("Action completed", zap.String("action", name))
}

// LogCommand logs an external command invocation.
func LogCommand(argv []string, err error) {
	if err != nil {
		Error("External command failed",
			zap.Strings("argv", argv),
			zap.Error(err),
		)
		return
	}
	Debug("External command succeeded", zap.Strings("argv", argv))
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
