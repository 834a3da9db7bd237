package dispatch

import (
	"io"
	"log/slog"
)

type bridgeOptions struct {
	codec  Codec
	logger *slog.Logger
}

// Option configures a dispatch bridge.
type Option func(*bridgeOptions)

// WithCodec replaces the default net/http codec.
func WithCodec(c Codec) Option {
	return func(o *bridgeOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets a logger for write failures. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *bridgeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newBridgeOptions(opts []Option) bridgeOptions {
	o := bridgeOptions{
		codec:  DefaultCodec(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
