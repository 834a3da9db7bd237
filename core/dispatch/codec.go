package dispatch

import (
	"fmt"
	"io"
	"net/http"
)

// Codec translates between the wire representation and the generic
// request/response model. The default implementation covers net/http;
// supply another via WithCodec to change the mapping.
type Codec interface {
	Decode(r *http.Request) *Request
	Encode(resp *Response, w http.ResponseWriter) error
}

// DefaultCodec returns the net/http codec.
func DefaultCodec() Codec { return stdCodec{} }

type stdCodec struct{}

func (stdCodec) Decode(r *http.Request) *Request {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &Request{
		Method:     r.Method,
		URI:        r.URL.Path,
		Query:      r.URL.RawQuery,
		Scheme:     scheme,
		Protocol:   r.Proto,
		Headers:    r.Header,
		Body:       r.Body,
		RemoteAddr: r.RemoteAddr,
	}
}

func (stdCodec) Encode(resp *Response, w http.ResponseWriter) error {
	write, err := bodyWriter(resp.Body)
	if err != nil {
		return err
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	return write(w)
}

// bodyWriter resolves the body variant before any header is written, so an
// unsupported body fails the exchange instead of corrupting it.
func bodyWriter(body any) (func(io.Writer) error, error) {
	switch b := body.(type) {
	case nil:
		return func(io.Writer) error { return nil }, nil
	case string:
		return func(w io.Writer) error {
			_, err := io.WriteString(w, b)
			return err
		}, nil
	case []byte:
		return func(w io.Writer) error {
			_, err := w.Write(b)
			return err
		}, nil
	case io.Reader:
		return func(w io.Writer) error {
			_, err := io.Copy(w, b)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}
}

// Normalize maps a handler result onto a canonical response. A nil result
// means the handler declined the request. A bare string becomes a 200
// response with that body.
func Normalize(v any) (*Response, error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &Response{Status: http.StatusOK, Body: r}, nil
	case *Response:
		return r, nil
	case Response:
		return &r, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedResult, v)
	}
}
