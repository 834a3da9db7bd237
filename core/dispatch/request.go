package dispatch

import (
	"io"
	"net/http"
)

// Request is the generic representation handed to handlers. Header keys are
// case-insensitive by construction (http.Header canonicalization).
type Request struct {
	Method     string
	URI        string
	Query      string
	Scheme     string
	Protocol   string
	Headers    http.Header
	Body       io.ReadCloser
	RemoteAddr string
}

// Response is the canonical handler result. Body may be a string, []byte,
// io.Reader or nil. A zero Status is written as 200.
type Response struct {
	Status  int
	Headers map[string]string
	Body    any
}

// Handler processes a request synchronously on the serving goroutine.
// The result may be nil (the handler declines the request), a string
// (shorthand for a 200 text body), or a *Response. Panics are not recovered
// here; crash isolation belongs to the surrounding runtime boundary.
type Handler func(*Request) any

// AsyncHandler registers interest in a request and returns immediately.
// Exactly one of respond or raiseError must eventually be invoked, from any
// goroutine; that is the handler's obligation, not enforced here. respond
// accepts the same result shapes as Handler.
type AsyncHandler func(req *Request, respond func(any), raiseError func(error))
