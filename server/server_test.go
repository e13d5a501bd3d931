package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"laptop-price-api/config"
	"laptop-price-api/logger"
	"laptop-price-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := filepath.Join("..", "inference", "testdata")
	cfg := &config.Config{
		Server: config.ServerConfig{ServiceName: "LaptopGenius API", StaticDir: t.TempDir()},
		Artifacts: config.ArtifactsConfig{
			PipelinePath:  filepath.Join(dir, "pipe.json"),
			ReferencePath: filepath.Join(dir, "df.csv"),
		},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
	}

	store, err := services.LoadArtifactStore(cfg.Artifacts)
	require.NoError(t, err)
	catalog, err := services.NewOptionCatalog(store.Reference)
	require.NoError(t, err)
	broadcaster, err := services.NewPredictionBroadcaster(cfg.Redis, logger.NewNop())
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:      cfg,
		Log:         logger.NewNop(),
		Catalog:     catalog,
		Predictor:   services.NewPricePredictor(store),
		Broadcaster: broadcaster,
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/options", "", http.StatusOK},
		{http.MethodPost, "/api/predict", "{}", http.StatusBadRequest},
		{http.MethodGet, "/api/predictions/live", "", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestRouterPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ln, router, time.Second, logger.NewNop())
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "healthy")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
