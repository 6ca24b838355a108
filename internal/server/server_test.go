package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	srv, err := NewServer(http.NewServeMux(), config.Server{
		HTTPAddress:    "localhost:0",
		RequestTimeout: 30 * time.Second,
	}, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestNewServer_NoAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:8080", RequestTimeout: 10 * time.Second}

	h := newHTTPServer(http.NewServeMux(), cfg, logger.Nop())

	assert.Equal(t, "localhost:8080", h.server.Addr)
	assert.Equal(t, 10*time.Second, h.server.ReadTimeout)
	assert.Equal(t, 20*time.Second, h.server.WriteTimeout)
}

func TestHTTPServer_ShutdownWithoutRun(t *testing.T) {
	h := newHTTPServer(http.NewServeMux(), config.Server{
		HTTPAddress:    "localhost:0",
		RequestTimeout: time.Second,
	}, logger.Nop())

	// shutting down a server that never started must not panic
	h.Shutdown()
}
