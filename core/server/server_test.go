package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	_, err := server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	_, err = server.NewFromConfig(server.Config{Addr: ":0", TLSCertFile: "missing.crt", TLSKeyFile: "missing.key"})
	assert.ErrorIs(t, err, server.ErrLoadTLS)

	srv, err := server.NewFromConfig(server.Config{Addr: "127.0.0.1:0", ReadTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestRunServesAndStops(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler)() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + srv.Addr())
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body) == "ok"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx, http.NotFoundHandler()) }()
	require.Eventually(t, func() bool { return srv.Addr() != "127.0.0.1:0" }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, srv.Start(ctx, http.NotFoundHandler()), server.ErrServerAlreadyRunning)
	cancel()
	assert.NoError(t, srv.Stop())
}
