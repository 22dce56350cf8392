package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Unix(0, 0)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("a") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("expected separate bucket per client")
	}

	now = now.Add(500 * time.Millisecond)
	if !rl.Allow("a") {
		t.Fatal("expected one token after half a window")
	}
	if rl.Allow("a") {
		t.Fatal("expected bucket to be empty again")
	}

	now = now.Add(time.Hour)
	rl.prune()
	if len(rl.buckets) != 0 {
		t.Errorf("expected idle buckets pruned, got %d", len(rl.buckets))
	}
}

func TestDeduplicator(t *testing.T) {
	now := time.Unix(0, 0)
	d := NewDeduplicator(time.Second)
	d.now = func() time.Time { return now }

	r := gin.New()
	r.Use(d.Middleware())
	r.POST("/search", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, string(body))
	})
	r.GET("/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body)))
		return w
	}

	w := post(`["pollo"]`)
	if w.Code != http.StatusOK || w.Body.String() != `["pollo"]` {
		t.Fatalf("first request: %d %q", w.Code, w.Body.String())
	}
	if w := post(`["pollo"]`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	if w := post(`["arroz"]`); w.Code != http.StatusOK {
		t.Fatalf("different body status = %d", w.Code)
	}

	now = now.Add(2 * time.Second)
	if w := post(`["pollo"]`); w.Code != http.StatusOK {
		t.Fatalf("after window status = %d", w.Code)
	}

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET should not be deduplicated, got %d", w.Code)
		}
	}
}

func TestNewDeduplicatorDefaultWindow(t *testing.T) {
	if d := NewDeduplicator(0); d.window != DefaultDedupWindow {
		t.Errorf("window = %v", d.window)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("slow status = %d, want 504", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("fast status = %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestBodySizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
