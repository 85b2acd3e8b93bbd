// Package logger provides the shared zap logger for constel binaries.
// Library packages take a *zap.SugaredLogger explicitly; this package
// only bootstraps one for the CLI and keeps a safe no-op default so
// nothing panics if logging is used before Initialize.
package logger

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger. Defaults to a no-op until
// Initialize is called.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize builds the real logger. Verbose selects the development
// config (console encoder, debug level); otherwise production JSON.
func Initialize(verbose bool) error {
	var (
		zl  *zap.Logger
		err error
	)
	if verbose {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Logger = zl.Sugar()
	return nil
}

// Sync flushes buffered log entries. Best-effort; safe on the no-op
// logger.
func Sync() {
	_ = Logger.Sync()
}
