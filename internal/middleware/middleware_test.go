package middleware_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/middleware"
	"github.com/stemsi/gatemock-backend/internal/model"
)

type staticUser struct {
	user *model.User
}

func (s staticUser) GetCurrentUser(context.Context) (*model.User, error) {
	return s.user, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func do(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"signed out", nil, http.StatusUnauthorized},
		{"student", &model.User{ID: "s", Role: model.RoleUser}, http.StatusForbidden},
		{"admin", &model.User{ID: "a", Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine()
			r.Use(middleware.LoadCurrentUser(staticUser{tt.user}, zerolog.New(io.Discard)), middleware.RequireAdmin())
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			if w := do(r, http.MethodGet, "/", nil); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequireCurrentUser(t *testing.T) {
	r := newEngine()
	r.Use(middleware.LoadCurrentUser(staticUser{}, zerolog.New(io.Discard)), middleware.RequireCurrentUser())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SIGN_IN_REQUIRED") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newEngine()
	r.Use(middleware.NewRateLimiter(ctx, 1, time.Hour).Middleware())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusCreated) })

	if w := do(r, http.MethodPost, "/", nil); w.Code != http.StatusCreated {
		t.Fatalf("first status = %d", w.Code)
	}
	w := do(r, http.MethodPost, "/", nil)
	if w.Code != http.StatusTooManyRequests || !strings.Contains(w.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Errorf("second = %d %s", w.Code, w.Body.String())
	}
}

func TestCacheControl(t *testing.T) {
	r := newEngine()
	r.GET("/", middleware.CacheControl(time.Hour), func(c *gin.Context) { c.Status(http.StatusOK) })

	if got := do(r, http.MethodGet, "/", nil).Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("gate mock question bank ", 200)

	r := newEngine()
	r.Use(middleware.Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	br := http.Header{"Accept-Encoding": {"gzip, br;q=0.9"}}

	t.Run("compresses large bodies", func(t *testing.T) {
		w := do(r, http.MethodGet, "/large", br)
		if w.Header().Get("Content-Encoding") != "br" {
			t.Fatalf("Content-Encoding = %q", w.Header().Get("Content-Encoding"))
		}
		body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(body) != large {
			t.Error("round trip mismatch")
		}
	})

	t.Run("leaves small bodies", func(t *testing.T) {
		w := do(r, http.MethodGet, "/small", br)
		if w.Header().Get("Content-Encoding") != "" || w.Body.String() != "ok" {
			t.Errorf("got %q encoded %q", w.Body.String(), w.Header().Get("Content-Encoding"))
		}
	})

	t.Run("respects Accept-Encoding", func(t *testing.T) {
		w := do(r, http.MethodGet, "/large", http.Header{"Accept-Encoding": {"gzip"}})
		if w.Header().Get("Content-Encoding") != "" || w.Body.String() != large {
			t.Error("compressed without br in Accept-Encoding")
		}
	})
}
