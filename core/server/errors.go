package server

import "errors"

var (
	// ErrAlreadyRunning is returned by Start on a running server.
	ErrAlreadyRunning = errors.New("server is already running")

	// ErrNotRunning is returned by Stop or Join when the server is not
	// running. It is reported, never fatal: the server ends up stopped.
	ErrNotRunning = errors.New("server is not running")

	// ErrStopped is returned by Start on a stopped server; stopped is terminal.
	ErrStopped = errors.New("server has been stopped")

	// ErrUnsupportedHandler is returned when the handler argument is none
	// of the supported shapes.
	ErrUnsupportedHandler = errors.New("unsupported handler type")
)
