package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventradar/config"
	"eventradar/internal/delivery/api/router"
	"eventradar/internal/delivery/api/router/handler"
	deliverycontext "eventradar/internal/delivery/context"
	"eventradar/internal/domain/entity"
	"eventradar/internal/infra/metrics"
	mockUsecase "eventradar/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.Env.ServiceName = "eventradar-test"
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*echo.Echo, *mockUsecase.MockRecommendationUsecase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := mockUsecase.NewMockRecommendationUsecase(t)

	registry := metrics.NewRegistry()
	_, err := metrics.New(registry)
	require.NoError(t, err)

	e := newEcho(ServerParams{
		Lc:     fxtest.NewLifecycle(t),
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			RecommendationHandler: handler.NewRecommendationHandler(handler.RecommendationHandlerParams{
				RecommendationUC: uc,
				Logger:           logger,
			}),
			Config:   cfg,
			Registry: registry,
		},
	})

	return e, uc
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestServer_HealthEndpoints(t *testing.T) {
	e, _ := newTestServer(t, newTestConfig())

	for _, path := range []string{"/health", "/api/health"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String(), path)
		assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID), path)
	}
}

func TestServer_RecommendationsCarryRequestID(t *testing.T) {
	e, uc := newTestServer(t, newTestConfig())

	uc.EXPECT().FindNearbyEvents(mock.Anything, mock.Anything).Return([]entity.Event{{Name: "Jazz Night"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
		strings.NewReader(`{"latitude":33.75,"longitude":-84.39}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-supplied-id")

	rec := serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-supplied-id", rec.Header().Get(deliverycontext.HeaderXRequestID))

	var body struct {
		Meta struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "client-supplied-id", body.Meta.RequestID)
}

func TestServer_UnknownRouteUsesErrorEnvelope(t *testing.T) {
	e, _ := newTestServer(t, newTestConfig())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "HTTP_ERROR", body["error"].(map[string]any)["code"])
}

func TestServer_CORS(t *testing.T) {
	e, _ := newTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(echo.HeaderOrigin, "https://frontend.example")

	rec := serve(e, req)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	e, _ := newTestServer(t, newTestConfig())

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.Metrics.Enabled = false
	e, _ := newTestServer(t, cfg)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewServer_RegistersShutdownHook(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := NewServer(ServerParams{
		Lc:     lc,
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			RecommendationHandler: handler.NewRecommendationHandler(handler.RecommendationHandlerParams{
				RecommendationUC: mockUsecase.NewMockRecommendationUsecase(t),
				Logger:           logger,
			}),
			Config: cfg,
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, srv)

	lc.RequireStart().RequireStop()
}
