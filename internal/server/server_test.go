package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cokeastorga/astorgayabogados/internal/bootstrap"
	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/internal/controller"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	cfg := &config.Config{App: config.AppConfig{Port: "0", CorsAllowedOrigins: "*", RateLimitPerMinute: 5}}
	return New(cfg, &bootstrap.Container{
		ChatController:  controller.NewChatController(nil, nil),
		EmailController: controller.NewEmailController(nil),
		NewsController:  controller.NewNewsController(nil),
	})
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestServer().GetApp()

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestAuditUnavailableWithoutDatabase(t *testing.T) {
	app := newTestServer().GetApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/audit", nil), -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
