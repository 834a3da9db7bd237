// Package dispatch bridges the generic handler abstraction onto net/http.
//
// A Handler is a plain function from the decoded request to a result; the
// result is duck-shaped and normalized explicitly: nil declines the request,
// a bare string becomes a 200 text body, a *Response passes through.
//
//	h := func(r *dispatch.Request) any {
//		return "hello"
//	}
//	http.ListenAndServe(":8080", dispatch.Sync(h))
//
// An AsyncHandler registers and returns; it completes the exchange later by
// calling exactly one of the two callbacks it was given:
//
//	h := func(r *dispatch.Request, respond func(any), raiseError func(error)) {
//		go func() {
//			result, err := slowLookup(r)
//			if err != nil {
//				raiseError(err)
//				return
//			}
//			respond(&dispatch.Response{Status: 200, Body: result})
//		}()
//	}
//	http.ListenAndServe(":8080", dispatch.Async(h))
//
// Translation between net/http and the generic model goes through the Codec
// interface; DefaultCodec covers the standard cases and WithCodec swaps it.
package dispatch
