// Package transport turns the declarative server configuration into bound
// network listeners.
//
// A Connector is a pure description: an ordered protocol stack (PROXY
// decoding, ALPN negotiation, HTTP/2, cleartext HTTP/2 upgrade, HTTP/1.1),
// an address, an idle timeout and optionally a TLS negotiation surface.
// Connectors builds the descriptions; Bind materializes one by opening the
// socket and folding the stack over listener and handler in order:
//
//	PROXY  -> proxyproto listener wrap, consuming the header first
//	ALPN   -> NextProtos offered during the TLS handshake
//	H2     -> http2.ConfigureServer on the secure connector
//	H2C    -> h2c handler wrap on the plain connector
//	HTTP/1 -> the base http.Server framing
//
// Idle connections are closed by the runtime via each connector's idle
// timeout; application code never sees them.
package transport
