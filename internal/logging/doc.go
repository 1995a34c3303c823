// Package logging provides structured logging for the Catena console.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the console. Because the console owns the terminal while it
// runs, log output always goes to a file - never stdout or stderr.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: detailed tracing (key dispatch, node expansion, command argv)
//   - Info: normal operations (screen transitions, successful submits)
//   - Warn: non-fatal issues (rejected overlay presentation)
//   - Error: failures (external command errors, action dispatch failures)
//
// # Configuration
//
// Logging is silent unless enabled. Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The CATENA_LOG_LEVEL environment variable selects the level and the
// CATENA_LOG_FILE variable selects the destination file.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
