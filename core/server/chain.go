package server

import (
	"net/http"
	"strings"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/ws"
)

// entry is one path-scoped handler in the chain.
type entry struct {
	prefix  string
	handler http.Handler
}

// chain evaluates path-scoped websocket handlers in registration order ahead
// of the single catch-all. An entry claims a request only when the path
// matches its prefix and the request is a genuine websocket upgrade;
// everything else falls through. First match wins.
type chain struct {
	entries  []entry
	catchAll http.Handler
}

func newChain(routes []ws.Route, opts ws.Options, catchAll http.Handler) *chain {
	c := &chain{catchAll: catchAll}
	for _, r := range routes {
		c.entries = append(c.entries, entry{
			prefix:  r.Path,
			handler: ws.NewHandler(r, opts),
		})
	}
	return c
}

func (c *chain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, e := range c.entries {
		if strings.HasPrefix(r.URL.Path, e.prefix) && ws.IsUpgrade(r) {
			e.handler.ServeHTTP(w, r)
			return
		}
	}
	c.catchAll.ServeHTTP(w, r)
}
