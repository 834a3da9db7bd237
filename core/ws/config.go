package ws

import "net/http"

// Config is the static callback set for one websocket path. Every callback
// is optional; missing callbacks drop the corresponding events.
type Config struct {
	OnConnect func(Session)
	OnText    func(Session, string)
	OnBytes   func(Session, []byte)
	OnClose   func(Session, int, string)
	OnError   func(Session, error)
}

// ConfigFunc resolves a callback set per upgrade request, for endpoints
// whose behavior depends on the request (auth, subprotocol selection).
// Returning an error rejects the upgrade with a 400 and the error's message.
type ConfigFunc func(r *http.Request) (*Config, error)

// Route binds one path prefix to a websocket configuration. Exactly one of
// Config or ConfigFunc should be set; ConfigFunc wins when both are.
type Route struct {
	Path       string
	Config     *Config
	ConfigFunc ConfigFunc
}

// resolve picks the callback set for one upgrade request.
func (r Route) resolve(req *http.Request) (*Config, error) {
	if r.ConfigFunc != nil {
		return r.ConfigFunc(req)
	}
	if r.Config != nil {
		return r.Config, nil
	}
	return &Config{}, nil
}
