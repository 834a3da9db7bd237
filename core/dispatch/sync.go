package dispatch

import (
	"errors"
	"net/http"
)

// Sync bridges a synchronous Handler onto the connection-processing
// contract. The serving goroutine is occupied for the full handler duration;
// there is no suspension point.
//
// A nil handler result leaves the request unhandled and falls back to a 404,
// so declining handlers compose with routing layered in front.
func Sync(h Handler, opts ...Option) http.Handler {
	o := newBridgeOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := Normalize(h(o.codec.Decode(r)))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if resp == nil {
			http.NotFound(w, r)
			return
		}
		writeResponse(w, r, resp, o)
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp *Response, o bridgeOptions) {
	if err := o.codec.Encode(resp, w); err != nil {
		o.logger.ErrorContext(r.Context(), "failed to write response",
			"method", r.Method, "path", r.URL.Path, "error", err)
		// An unsupported body fails before any header is written, so a 500
		// can still be sent. Mid-body write errors cannot be reported.
		if errors.Is(err, ErrUnsupportedBody) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
