package config

import "time"

const (
	// DefaultSSLPort is used when SSL is enabled without an explicit port.
	DefaultSSLPort = 443

	// DefaultMaxIdleTime closes connections idle beyond this.
	DefaultMaxIdleTime = 200 * time.Second

	// DefaultWSMaxIdleTime closes upgraded websocket connections idle beyond this.
	DefaultWSMaxIdleTime = 500 * time.Second

	// DefaultOutputBufferSize is the default write buffer size in bytes.
	DefaultOutputBufferSize = 32768

	// DefaultRequestHeaderSize caps the size of incoming request headers.
	DefaultRequestHeaderSize = 8192

	// DefaultResponseHeaderSize is the nominal response header budget.
	DefaultResponseHeaderSize = 8192

	// DefaultHeaderCacheSize is the nominal header cache budget.
	DefaultHeaderCacheSize = 512

	// DefaultMaxThreads bounds in-flight connections per connector.
	DefaultMaxThreads = 50

	// DefaultMinThreads is retained for configuration parity.
	DefaultMinThreads = 8

	// DefaultThreadIdleTimeout is retained for configuration parity.
	DefaultThreadIdleTimeout = 60 * time.Second
)
