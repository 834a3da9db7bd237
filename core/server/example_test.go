package server_test

import (
	"fmt"
	"net/http"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/dispatch"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/server"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/ws"
)

func ExampleStart() {
	handler := func(r *dispatch.Request) any {
		if r.URI == "/health" {
			return &dispatch.Response{Status: http.StatusOK, Body: "ok"}
		}
		return "Hello, World!"
	}

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.Join = false

	srv, err := server.Start(handler, cfg,
		server.WithWebSockets(ws.Route{
			Path: "/echo",
			Config: &ws.Config{
				OnText: func(s ws.Session, msg string) { _ = s.Send(msg) },
			},
		}),
	)
	if err != nil {
		fmt.Println("start:", err)
		return
	}
	defer func() { _ = server.Stop(srv) }()

	fmt.Println(srv.State())
	// Output: running
}
