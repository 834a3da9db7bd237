package transport

import (
	"net"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
)

// Settings captures wire-level behavior shared by every connector: buffer
// and header budgets, response header shaping, and the scheme/port
// advertised for secure redirects. It is pure data mapped from the server
// configuration; construction has no side effects.
type Settings struct {
	OutputBufferSize   int
	RequestHeaderSize  int
	ResponseHeaderSize int
	HeaderCacheSize    int
	SendServerVersion  bool
	SendDateHeader     bool
	SecureScheme       string
	SecurePort         int

	// Listen opens the socket for a connector; defaults to net.Listen.
	// The server replaces it to interpose its connection limiter.
	Listen func(network, addr string) (net.Listener, error)
}

// NewSettings maps the server configuration onto connector-layer settings,
// applying the documented defaults for any absent field.
func NewSettings(cfg config.Config) Settings {
	s := Settings{
		OutputBufferSize:   cfg.OutputBufferSize,
		RequestHeaderSize:  cfg.RequestHeaderSize,
		ResponseHeaderSize: cfg.ResponseHeaderSize,
		HeaderCacheSize:    cfg.HeaderCacheSize,
		SendServerVersion:  cfg.SendServerVersion,
		SendDateHeader:     cfg.SendDateHeader,
		SecureScheme:       cfg.SecureScheme,
		SecurePort:         cfg.EffectiveSSLPort(),
		Listen:             net.Listen,
	}
	if s.OutputBufferSize <= 0 {
		s.OutputBufferSize = config.DefaultOutputBufferSize
	}
	if s.RequestHeaderSize <= 0 {
		s.RequestHeaderSize = config.DefaultRequestHeaderSize
	}
	if s.ResponseHeaderSize <= 0 {
		s.ResponseHeaderSize = config.DefaultResponseHeaderSize
	}
	if s.HeaderCacheSize <= 0 {
		s.HeaderCacheSize = config.DefaultHeaderCacheSize
	}
	if s.SecureScheme == "" {
		s.SecureScheme = "https"
	}
	return s
}
