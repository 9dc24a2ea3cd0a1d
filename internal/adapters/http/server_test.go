package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Test Configuration
// ============================================

func TestDefaultServerConfig(t *testing.T) {
	config := DefaultServerConfig()

	assert.Equal(t, "0.0.0.0", config.Host)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 15*time.Second, config.ReadTimeout)
	assert.Equal(t, 15*time.Second, config.WriteTimeout)
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
	assert.NotNil(t, config.Logger)
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		host string
		port string
		want string
	}{
		{"Default", "0.0.0.0", "8080", "0.0.0.0:8080"},
		{"Localhost", "127.0.0.1", "9000", "127.0.0.1:9000"},
		{"EmptyHost", "", "8080", ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &ServerConfig{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.want, config.Address())
		})
	}
}

// ============================================
// Test Server Construction
// ============================================

func TestNewServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("WithConfig", func(t *testing.T) {
		config := &ServerConfig{
			Host:            "127.0.0.1",
			Port:            "9999",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			Logger:          DefaultServerConfig().Logger,
		}

		server := NewServer(config, gin.New())

		require.NotNil(t, server)
		assert.Equal(t, "127.0.0.1:9999", server.httpServer.Addr)
		assert.Equal(t, 5*time.Second, server.httpServer.ReadTimeout)
	})

	t.Run("NilConfig", func(t *testing.T) {
		server := NewServer(nil, gin.New())

		require.NotNil(t, server)
		assert.Equal(t, "0.0.0.0:8080", server.httpServer.Addr)
	})
}

// ============================================
// Test Lifecycle
// ============================================

func TestServer_RunWithContext_Cancellation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	config := DefaultServerConfig()
	config.Host = "127.0.0.1"
	config.Port = "0" // any free port
	config.ShutdownTimeout = 2 * time.Second

	server := NewServer(config, router)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.RunWithContext(ctx)
	}()

	// Let the listener start, then cancel.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(DefaultServerConfig(), gin.New())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(ctx))
}
