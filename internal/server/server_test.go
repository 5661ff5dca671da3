// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/store-ratings/internal/config"
)

type flag struct{ down bool }

func (f *flag) SetShutdown(v bool) { f.down = v }

func TestRouter_RecoversFromPanics(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{Host: "127.0.0.1", Port: 0}})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShutdown_FlipsHealthBeforeClosing(t *testing.T) {
	notifier := &flag{}
	srv := New(Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		HealthHandler: notifier,
	})
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())

	require.NoError(t, srv.Shutdown(context.Background(), 10*time.Millisecond))
	assert.True(t, notifier.down)
}

func TestShutdown_ContextExpiresDuringDrain(t *testing.T) {
	srv := New(Config{HealthHandler: &flag{}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := srv.Shutdown(ctx, time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
