package dispatch

import "net/http"

// Async bridges an AsyncHandler onto the connection-processing contract.
// The handler call itself is registration only: it must return promptly, and
// the exchange completes whenever respond or raiseError fires, possibly from
// another goroutine entirely (a timer, a downstream I/O completion). The
// serving goroutine parks on the exchange until then; a handler that never
// completes holds the connection until the connector's idle timeout closes it.
//
// raiseError produces a 500 response whose body is the error's message. That
// is the only error path handled here; everything else belongs to the
// handler or the transport.
func Async(h AsyncHandler, opts ...Option) http.Handler {
	o := newBridgeOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex := newExchange()
		h(o.codec.Decode(r),
			func(v any) { ex.complete(outcome{value: v}) },
			func(err error) { ex.complete(outcome{err: err}) },
		)

		out, ok := ex.wait(r.Context())
		if !ok {
			return // connection gone; nothing left to write to
		}
		if out.err != nil {
			http.Error(w, out.err.Error(), http.StatusInternalServerError)
			return
		}
		resp, err := Normalize(out.value)
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
