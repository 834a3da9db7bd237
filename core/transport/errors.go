package transport

import "errors"

var (
	// ErrLoadCert is returned when the certificate or key file cannot be loaded.
	ErrLoadCert = errors.New("failed to load certificate")

	// ErrLoadClientCA is returned when the client CA file cannot be loaded or parsed.
	ErrLoadClientCA = errors.New("failed to load client CA certificates")
)
