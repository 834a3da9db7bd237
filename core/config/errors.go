package config

import "errors"

var (
	// ErrNoConnector is returned when neither a plain nor a secure
	// connector is enabled.
	ErrNoConnector = errors.New("no connector enabled: at least one of http, ssl or ssl-port is required")

	// ErrInvalidClientAuth is returned for a client-auth mode other than
	// none, want or need.
	ErrInvalidClientAuth = errors.New("invalid client auth mode")
)
