// Package ws is the websocket subsystem: it upgrades requests claimed by a
// path-scoped route and drives each session's read loop, dispatching frames
// to the route's callback set.
//
// A route's configuration is either a static Config (a set of OnConnect,
// OnText, OnBytes, OnClose, OnError callbacks) or a ConfigFunc resolved once
// per upgrade request. Sessions expose send, close, remote address, idle
// timeout and the originating upgrade request.
//
//	route := ws.Route{
//		Path: "/echo",
//		Config: &ws.Config{
//			OnText: func(s ws.Session, msg string) {
//				_ = s.Send(msg)
//			},
//		},
//	}
//
// Wire framing, compression and subprotocol handling are gorilla/websocket's
// concern; this package only adapts it to the server's routing and timeout
// model.
package ws
