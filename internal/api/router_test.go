package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chef-express/internal/core/matching"
	recipeService "chef-express/internal/core/recipe"
	"chef-express/internal/infrastructure/config"
	"chef-express/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Version: "test"},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 10,
		},
		RateLimit:   config.RateLimitConfig{Enabled: false},
		DedupWindow: time.Minute,
	}
}

func setupTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := recipeService.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, r := range []common.Recipe{
		{ID: "r1", Title: "Arroz con pollo", TotalTime: "40 min", SearchTags: []string{"Pollo", "Arroz", "Cebolla"}},
		{ID: "r2", Title: "Pollo asado", SearchTags: []string{"Pollo"}},
	} {
		if err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	ranker := matching.NewRanker(matching.NewScorer(nil, nil), matching.DefaultMinCoverage)
	svc := recipeService.NewService(store, ranker, nil)

	router, err := SetupRouter(cfg, svc, nil)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return router
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouterRequiresDependencies(t *testing.T) {
	if _, err := SetupRouter(nil, nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := SetupRouter(testConfig(), nil, nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestSearchRoute(t *testing.T) {
	r := setupTestRouter(t, testConfig())

	w := do(r, http.MethodPost, "/api/v1/recipes/search", `[{"name":"pollo"},{"name":"arroz"}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var ranking common.Ranking
	if err := json.Unmarshal(w.Body.Bytes(), &ranking); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ranking.Results) != 2 {
		t.Fatalf("results = %+v", ranking.Results)
	}
	if ranking.Results[0].RecipeID != "r2" || ranking.Results[0].CoveragePercent != 100 {
		t.Errorf("first = %+v", ranking.Results[0])
	}
	if ranking.Results[1].CoverageLabel != "67%" {
		t.Errorf("second = %+v", ranking.Results[1])
	}
}

func TestSearchRouteDeduplicates(t *testing.T) {
	r := setupTestRouter(t, testConfig())
	body := `[{"name":"pollo"}]`

	if w := do(r, http.MethodPost, "/api/v1/recipes/search", body); w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/recipes/search", body); w.Code != http.StatusTooManyRequests {
		t.Fatalf("duplicate status = %d, want 429", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/recipes/search", `[{"name":"arroz"}]`); w.Code != http.StatusOK {
		t.Fatalf("different body status = %d", w.Code)
	}
}

func TestRoutes(t *testing.T) {
	r := setupTestRouter(t, testConfig())

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"detail", http.MethodGet, "/api/v1/recipes/r1", "", http.StatusOK},
		{"detail not found", http.MethodGet, "/api/v1/recipes/missing", "", http.StatusNotFound},
		{"bad search body", http.MethodPost, "/api/v1/recipes/search", `nope`, http.StatusBadRequest},
		{"blank ingredient", http.MethodPost, "/api/v1/recipes/search", `[{"name":"  "}]`, http.StatusBadRequest},
		{"body too large", http.MethodPost, "/api/v1/recipes/search", "[" + strings.Repeat(" ", 2048) + "]", http.StatusRequestEntityTooLarge},
		{"legacy search", http.MethodPost, "/.netlify/functions/buscarRecetas", `[{"nombre":"pollo"}]`, http.StatusOK},
		{"legacy detail", http.MethodGet, "/.netlify/functions/obtenerReceta?id=r1", "", http.StatusOK},
		{"legacy detail missing id", http.MethodGet, "/.netlify/functions/obtenerReceta", "", http.StatusBadRequest},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK},
		{"live", http.MethodGet, "/live", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/recipes/r1", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRateLimitedRouter(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Hour}
	r := setupTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodGet, "/live", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	w := do(r, http.MethodGet, "/live", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

// blockingStore 查詢會等到請求期限結束
type blockingStore struct{}

func (blockingStore) FindByTags(ctx context.Context, names []string) ([]common.Recipe, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) Get(ctx context.Context, id string) (*common.Recipe, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) Ping(ctx context.Context) error { return nil }

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Server.RequestTimeout = 20 * time.Millisecond

	ranker := matching.NewRanker(matching.NewScorer(nil, nil), matching.DefaultMinCoverage)
	r, err := SetupRouter(cfg, recipeService.NewService(blockingStore{}, ranker, nil), nil)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"search", http.MethodPost, "/api/v1/recipes/search", `[{"name":"pollo"}]`},
		{"detail", http.MethodGet, "/api/v1/recipes/r1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != http.StatusGatewayTimeout {
				t.Fatalf("status = %d, want 504, body = %s", w.Code, w.Body.String())
			}
			var resp common.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != common.ErrCodeGatewayTimeout {
				t.Errorf("code = %q, want %q", resp.Code, common.ErrCodeGatewayTimeout)
			}
		})
	}
}

func TestMethodNotAllowedBody(t *testing.T) {
	r := setupTestRouter(t, testConfig())

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode bool
	}{
		{"v1 route", http.MethodDelete, "/api/v1/recipes/r1", true},
		{"legacy search", http.MethodGet, "/.netlify/functions/buscarRecetas", false},
		{"legacy detail", http.MethodPost, "/.netlify/functions/obtenerReceta", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, "")
			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d, want 405", w.Code)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := body["message"]; !ok {
				t.Errorf("missing message in %s", w.Body.String())
			}
			if _, ok := body["code"]; ok != tt.wantCode {
				t.Errorf("code present = %v, want %v, body = %s", ok, tt.wantCode, w.Body.String())
			}
		})
	}
}
