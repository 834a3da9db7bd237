package dispatch

import "errors"

var (
	// ErrUnsupportedResult is returned when a handler result is neither
	// nil, a string, a Response nor a *Response.
	ErrUnsupportedResult = errors.New("unsupported handler result type")

	// ErrUnsupportedBody is returned when a response body is neither nil,
	// a string, a []byte nor an io.Reader.
	ErrUnsupportedBody = errors.New("unsupported response body type")
)
