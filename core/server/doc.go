// Package server hosts a generic request handler behind configurable
// network connectors: plaintext HTTP, TLS, HTTP/2 over both transports and
// the PROXY protocol, with path-scoped websocket routes evaluated ahead of
// the catch-all handler.
//
// The server owns a connection limiter sized from the pool configuration and
// one bound listener per enabled connector. Lifecycle is unstarted, running,
// stopped; stopped is terminal and teardown is atomic.
//
// # Basic usage
//
//	handler := func(r *dispatch.Request) any {
//		return "Hello, World!"
//	}
//
//	cfg := config.Default()
//	cfg.Port = 8080
//	cfg.Join = false
//
//	srv, err := server.Start(handler, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer server.Stop(srv)
//
// # Asynchronous handlers
//
// An async handler registers and returns; the connection stays suspended
// until the handler completes it from any goroutine:
//
//	handler := func(r *dispatch.Request, respond func(any), raiseError func(error)) {
//		time.AfterFunc(time.Second, func() {
//			respond(&dispatch.Response{Status: 200, Body: "done"})
//		})
//	}
//
// # Websockets
//
// Path-scoped websocket routes claim genuine upgrade requests before the
// catch-all sees them:
//
//	srv, err := server.Start(handler, cfg,
//		server.WithWebSockets(ws.Route{
//			Path: "/ws",
//			Config: &ws.Config{
//				OnText: func(s ws.Session, msg string) { _ = s.Send(msg) },
//			},
//		}),
//	)
//
// # Secure connectors
//
// Enabling SSL (or setting SSLPort) adds a TLS connector; HTTP2 layers an
// ALPN negotiator and HTTP/2 framing ahead of HTTP/1.1 on it. On the plain
// connector, HTTP2C enables the cleartext upgrade and ProxyProtocol prepends
// a PROXY header decoder.
package server
