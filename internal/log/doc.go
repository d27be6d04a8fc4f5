// Package log provides logger construction helpers built on the standard
// slog package.
//
// The helpers give every command the same logging behavior: warnings and
// errors by default, full debug output in verbose mode, and a choice of
// text or JSON handlers.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
