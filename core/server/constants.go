package server

import "time"

const (
	// DefaultShutdownTimeout bounds graceful connection draining on Stop.
	DefaultShutdownTimeout = 30 * time.Second
)
