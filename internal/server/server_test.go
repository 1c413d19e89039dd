package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"payment-reminder/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServer_RunAndShutdown(t *testing.T) {
	publicAddr, adminAddr := freeAddr(t), freeAddr(t)

	srv := New(Options{
		Address:           publicAddr,
		AdminAddress:      adminAddr,
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, echoRequestID(), NewAdminRouter(nil), logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + adminAddr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post("http://"+publicAddr+"/", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenerFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv := New(Options{
		Address:         busy.Addr().String(),
		AdminAddress:    freeAddr(t),
		ShutdownTimeout: time.Second,
	}, echoRequestID(), NewAdminRouter(nil), logger.NewNoOpLogger())

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), busy.Addr().String())
}
