package server_test

import (
	"crypto/tls"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/dispatch"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/server"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/ws"
)

// testConfig returns a plain-HTTP config on an ephemeral port that does not
// park the caller.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.Join = false
	return cfg
}

func startServer(t *testing.T, h any, opts ...server.Option) (*server.Server, string) {
	t.Helper()
	srv, err := server.Start(h, testConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Stop(srv) })

	addrs := srv.Addrs()
	require.Len(t, addrs, 1)
	return srv, "http://" + addrs[0]
}

func TestNew(t *testing.T) {
	t.Run("fails before any bind when no connector is enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.HTTP = false

		srv, err := server.New(func(*dispatch.Request) any { return nil }, cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrNoConnector)
		assert.Nil(t, srv)
	})

	t.Run("fails on invalid client auth", func(t *testing.T) {
		cfg := testConfig()
		cfg.ClientAuth = config.ClientAuth("perhaps")

		_, err := server.New(func(*dispatch.Request) any { return nil }, cfg)
		assert.ErrorIs(t, err, config.ErrInvalidClientAuth)
	})

	t.Run("rejects unsupported handler shapes", func(t *testing.T) {
		_, err := server.New("not a handler", testConfig())
		assert.ErrorIs(t, err, server.ErrUnsupportedHandler)
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("serves a synchronous handler", func(t *testing.T) {
		_, url := startServer(t, func(r *dispatch.Request) any {
			return "hello from " + r.URI
		})

		resp, err := http.Get(url + "/greet")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "hello from /greet", string(body))
	})

	t.Run("serves an asynchronous handler", func(t *testing.T) {
		_, url := startServer(t, func(r *dispatch.Request, respond func(any), raiseError func(error)) {
			time.AfterFunc(10*time.Millisecond, func() {
				respond(&dispatch.Response{Status: http.StatusAccepted, Body: "queued"})
			})
		})

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		assert.Equal(t, "queued", string(body))
	})

	t.Run("serves from a struct-literal config", func(t *testing.T) {
		srv, err := server.Start(func(*dispatch.Request) any { return "ok" },
			config.Config{HTTP: true, Host: "127.0.0.1"})
		require.NoError(t, err)
		defer func() { _ = server.Stop(srv) }()

		resp, err := http.Get("http://" + srv.Addrs()[0])
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("start is rejected while running", func(t *testing.T) {
		srv, _ := startServer(t, func(*dispatch.Request) any { return "ok" })
		assert.ErrorIs(t, srv.Start(), server.ErrAlreadyRunning)
	})

	t.Run("stopped is terminal", func(t *testing.T) {
		srv, _ := startServer(t, func(*dispatch.Request) any { return "ok" })
		require.NoError(t, srv.Stop())
		assert.ErrorIs(t, srv.Start(), server.ErrStopped)
	})

	t.Run("stop twice reports but never fails hard", func(t *testing.T) {
		srv, _ := startServer(t, func(*dispatch.Request) any { return "ok" })

		require.NoError(t, srv.Stop())
		assert.Equal(t, server.StateStopped, srv.State())

		err := srv.Stop()
		assert.ErrorIs(t, err, server.ErrNotRunning)
		assert.Equal(t, server.StateStopped, srv.State())
	})

	t.Run("stop on an unstarted server is reported not fatal", func(t *testing.T) {
		srv, err := server.New(func(*dispatch.Request) any { return nil }, testConfig())
		require.NoError(t, err)

		assert.ErrorIs(t, srv.Stop(), server.ErrNotRunning)
		assert.Equal(t, server.StateStopped, srv.State())
	})

	t.Run("join parks until stop", func(t *testing.T) {
		srv, _ := startServer(t, func(*dispatch.Request) any { return "ok" })

		joined := make(chan error, 1)
		go func() { joined <- srv.Join() }()

		select {
		case <-joined:
			t.Fatal("join returned before stop")
		case <-time.After(50 * time.Millisecond):
		}

		require.NoError(t, srv.Stop())
		select {
		case err := <-joined:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("join did not return after stop")
		}
	})

	t.Run("configurator hook sees each underlying server", func(t *testing.T) {
		var hooked atomic.Int32
		startServer(t, func(*dispatch.Request) any { return "ok" },
			server.WithConfigurator(func(s *http.Server) {
				hooked.Add(1)
			}))

		assert.Equal(t, int32(1), hooked.Load())
	})

	t.Run("accepts a plain http.Handler as catch-all", func(t *testing.T) {
		_, url := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestHandlerChain(t *testing.T) {
	newServer := func(t *testing.T) (hits *atomic.Int32, url string) {
		hits = new(atomic.Int32)
		catchAll := func(r *dispatch.Request) any {
			hits.Add(1)
			return "fallthrough"
		}
		_, url = startServer(t, catchAll,
			server.WithWebSockets(ws.Route{
				Path: "/ws",
				Config: &ws.Config{
					OnText: func(s ws.Session, msg string) { _ = s.Send(msg) },
				},
			}))
		return hits, url
	}

	t.Run("upgrade requests on a registered path go to the websocket subsystem", func(t *testing.T) {
		hits, url := newServer(t)

		wsURL := "ws" + url[len("http"):] + "/ws/room1"
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		if resp != nil {
			defer resp.Body.Close()
		}
		defer conn.Close()

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "ping", string(data))
		assert.Equal(t, int32(0), hits.Load(), "catch-all must not see upgrade requests")
	})

	t.Run("non-upgrade requests on a websocket path fall through", func(t *testing.T) {
		hits, url := newServer(t)

		resp, err := http.Get(url + "/ws")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "fallthrough", string(body))
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("non-matching paths reach the catch-all", func(t *testing.T) {
		hits, url := newServer(t)

		resp, err := http.Get(url + "/api")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("routes are evaluated in registration order", func(t *testing.T) {
		claimed := make(chan string, 1)
		route := func(name string) ws.Route {
			return ws.Route{
				Path: "/ws",
				Config: &ws.Config{
					OnConnect: func(s ws.Session) { claimed <- name },
				},
			}
		}
		_, url := startServer(t, func(*dispatch.Request) any { return nil },
			server.WithWebSockets(route("first"), route("second")))

		wsURL := "ws" + url[len("http"):] + "/ws"
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		if resp != nil {
			defer resp.Body.Close()
		}
		defer conn.Close()

		select {
		case name := <-claimed:
			assert.Equal(t, "first", name)
		case <-time.After(time.Second):
			t.Fatal("no route claimed the upgrade")
		}
	})
}

func TestConnectionLimit(t *testing.T) {
	// holdSlot issues a request that parks in the handler until release is
	// closed, occupying one pool slot. Keep-alive would pin the slot after
	// the response too, so clients disable it.
	holdSlot := func(client *http.Client, url string) chan error {
		first := make(chan error, 1)
		go func() {
			resp, err := client.Get(url)
			if resp != nil {
				_ = resp.Body.Close()
			}
			first <- err
		}()
		// Give the request time to occupy the slot.
		time.Sleep(50 * time.Millisecond)
		return first
	}

	t.Run("second connection waits for the only slot", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxThreads = 1

		release := make(chan struct{})
		srv, err := server.Start(func(*dispatch.Request) any {
			<-release
			return "done"
		}, cfg)
		require.NoError(t, err)
		defer func() { _ = server.Stop(srv) }()

		client := &http.Client{
			Timeout:   5 * time.Second,
			Transport: &http.Transport{DisableKeepAlives: true},
		}

		url := "http://" + srv.Addrs()[0]
		first := holdSlot(client, url)

		second := make(chan int, 1)
		go func() {
			resp, err := client.Get(url)
			if err != nil {
				second <- -1
				return
			}
			defer resp.Body.Close()
			second <- resp.StatusCode
		}()

		select {
		case <-second:
			t.Fatal("second connection was served while the slot was held")
		case <-time.After(100 * time.Millisecond):
		}

		close(release)
		assert.NoError(t, <-first)
		assert.Equal(t, http.StatusOK, <-second)
	})

	t.Run("pool is shared across connectors", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxThreads = 1
		cfg.SSLPort = freePort(t)

		release := make(chan struct{})
		srv, err := server.Start(func(*dispatch.Request) any {
			<-release
			return "done"
		}, cfg, server.WithTLSConfig(selfSignedTLS(t)))
		require.NoError(t, err)
		defer func() { _ = server.Stop(srv) }()

		addrs := srv.Addrs()
		require.Len(t, addrs, 2)
		// The secure connector binds first.
		httpsURL := "https://" + addrs[0]
		httpURL := "http://" + addrs[1]

		plain := &http.Client{
			Timeout:   5 * time.Second,
			Transport: &http.Transport{DisableKeepAlives: true},
		}
		secure := &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
				DisableKeepAlives: true,
			},
		}

		first := holdSlot(plain, httpURL)

		second := make(chan int, 1)
		go func() {
			resp, err := secure.Get(httpsURL)
			if err != nil {
				second <- -1
				return
			}
			defer resp.Body.Close()
			second <- resp.StatusCode
		}()

		select {
		case <-second:
			t.Fatal("secure connector admitted a connection while the shared slot was held")
		case <-time.After(100 * time.Millisecond):
		}

		close(release)
		assert.NoError(t, <-first)
		assert.Equal(t, http.StatusOK, <-second)
	})
}

func TestStateString(t *testing.T) {
	for state, want := range map[server.State]string{
		server.StateUnstarted: "unstarted",
		server.StateRunning:   "running",
		server.StateStopped:   "stopped",
		server.State(42):      "unknown",
	} {
		assert.Equal(t, want, state.String(), strconv.Itoa(int(state)))
	}
}
