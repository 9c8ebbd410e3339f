package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func waitUp(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)

	var closed atomic.Bool
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithOnShutdown(func(context.Context) { closed.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	}()
	waitUp(t, addr)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed.Load())
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestRunTwice(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	srv := httpserver.New(httpserver.WithAddr(addr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Run(ctx, nil) }()
	waitUp(t, addr)

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
}

func TestRunListenError(t *testing.T) {
	t.Parallel()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := httpserver.New(httpserver.WithAddr(l.Addr().String()))
	assert.ErrorIs(t, srv.Run(context.Background(), nil), httpserver.ErrStart)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
	assert.Panics(t, func() { httpserver.WithOnShutdown(nil) })
}

func TestHealth(t *testing.T) {
	t.Parallel()

	get := func(h http.Handler) (int, map[string]any) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body
	}

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		code, body := get(httpserver.Liveness())
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "alive", body["status"])
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()
		code, body := get(httpserver.Readiness(nil, time.Second,
			httpserver.Check{Name: "database", Fn: func(context.Context) error { return nil }},
		))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("one failing check", func(t *testing.T) {
		t.Parallel()
		code, body := get(httpserver.Readiness(nil, time.Second,
			httpserver.Check{Name: "database", Fn: func(context.Context) error { return nil }},
			httpserver.Check{Name: "row_security", Fn: func(context.Context) error { return errors.New("members: disabled") }},
		))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not_ready", body["status"])
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "ok", checks["database"])
		assert.Equal(t, "fail", checks["row_security"])
		assert.NotContains(t, checks, "members: disabled")
	})

	t.Run("checks see a deadline", func(t *testing.T) {
		t.Parallel()
		_, _ = get(httpserver.Readiness(nil, time.Second, httpserver.Check{Name: "db", Fn: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil
		}}))
	})
}
