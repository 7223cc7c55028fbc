//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/config"
	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/handler"
	"github.com/JeffMenca/pitstop-manager/internal/middleware"
	"github.com/JeffMenca/pitstop-manager/internal/observer"
	"github.com/JeffMenca/pitstop-manager/internal/router"
	"github.com/JeffMenca/pitstop-manager/internal/service"
	"github.com/JeffMenca/pitstop-manager/internal/session"
)

// gateway wires the full client core against a stub backend, the way app.New
// does in production, and exposes the pieces tests poke at.
type gateway struct {
	server *httptest.Server
	store  *session.Store
	bus    *event.InMemoryBus
}

func newGateway(t *testing.T, backend http.Handler) *gateway {
	t.Helper()

	backendServer := httptest.NewServer(backend)
	t.Cleanup(backendServer.Close)

	cfg := &config.Config{
		APIBaseURL:          backendServer.URL,
		HTTPTimeout:         5 * time.Second,
		GatewayPort:         "0",
		ServerReadTimeout:   5 * time.Second,
		ServerIdleTimeout:   30 * time.Second,
		RequestTimeout:      5 * time.Second,
		RateLimitRPM:        1000,
		LoginRateLimitRPM:   1000,
		SessionPollInterval: 50 * time.Millisecond,
		StoragePollInterval: 10 * time.Millisecond,
	}

	bus := event.NewBus()
	store := session.NewStore(session.NewMemoryStorage(), bus)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, store)
	obs := observer.New(store, bus, cfg.SessionPollInterval)
	guard := middleware.NewGuard(obs)

	authService := service.NewAuthService(client, store)

	appRouter := router.New(cfg, guard, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Session: handler.NewSessionHandler(obs),
		Events:  handler.NewEventsHandler(bus),
		Pages:   handler.NewPagesHandler(obs),
		Resources: handler.NewResourceHandler(
			service.NewVehicleService(client),
			service.NewWorkOrderService(client),
			service.NewInventoryService(client),
			service.NewInvoiceService(client),
			service.NewPaymentService(client),
		),
	})

	gatewayServer := httptest.NewServer(appRouter)
	t.Cleanup(gatewayServer.Close)

	return &gateway{server: gatewayServer, store: store, bus: bus}
}

// get performs a request without following redirects, so admission decisions
// stay observable.
func (g *gateway) get(t *testing.T, path string) *http.Response {
	t.Helper()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(g.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (g *gateway) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(g.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}
