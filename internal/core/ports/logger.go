package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error together with its cause chain.
	Error(err error)
	// SetOutput redirects log output to w.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and human-readable output.
	SetJSON(enable bool)
}
