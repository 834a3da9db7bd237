package ws

import "errors"

var (
	// ErrUnsupportedMessage is returned by Send for message types other
	// than string and []byte.
	ErrUnsupportedMessage = errors.New("unsupported websocket message type")

	// ErrNotConnected is returned by Send after the session has closed.
	ErrNotConnected = errors.New("websocket session is not connected")
)
