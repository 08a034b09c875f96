package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidhub-go/internal/config"
	"vidhub-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			AccessSecret:       "access-secret",
			AccessExpireHours:  1,
			RefreshSecret:      "refresh-secret",
			RefreshExpireHours: 2,
		},
	})
}

type stubRevocation struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocation) IsRevoked(_ context.Context, id string) (bool, error) {
	return s.revoked[id], s.err
}

func whoami(c *gin.Context) {
	id, ok := GetCurrentUserID(c)
	c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
}

func newAuthRouter(revoked RevocationChecker) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthRequired(revoked), whoami)
	r.GET("/public", OptionalAuth(revoked), whoami)
	return r
}

func mustToken(t *testing.T, userID int64) (string, *utils.Claims) {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID, "alice", "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := utils.ParseAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	return token, claims
}

func TestAuthRequired(t *testing.T) {
	token, claims := mustToken(t, 7)

	tests := []struct {
		name    string
		revoked RevocationChecker
		setup   func(*http.Request)
		want    int
	}{
		{"missing token", nil, func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"cookie", nil, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token}) }, http.StatusOK},
		{"garbage", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"wrong scheme", nil, func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, http.StatusUnauthorized},
		{
			"revoked",
			stubRevocation{revoked: map[string]bool{claims.ID: true}},
			func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			http.StatusUnauthorized,
		},
		{
			"denylist unavailable",
			stubRevocation{err: errors.New("redis down")},
			func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			newAuthRouter(tt.revoked).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK {
				var body struct{ ID int64 }
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body.ID != 7 {
					t.Errorf("user id = %d", body.ID)
				}
			}
		})
	}
}

func TestOptionalAuth_AnonymousAllowed(t *testing.T) {
	r := newAuthRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct{ Authenticated bool }
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body.Authenticated {
		t.Errorf("invalid token should fall back to anonymous: %d %s", w.Code, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	mw, err := RateLimit(&config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2, CacheSize: 16})
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other ip status = %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get(HeaderRequestID); got == "" || got != w.Body.String() {
		t.Errorf("generated id = %q body = %q", got, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "trace-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "trace-123" {
		t.Errorf("client id not kept: %q", w.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		StatusCode int  `json:"statusCode"`
		Success    bool `json:"success"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusInternalServerError || body.StatusCode != 500 || body.Success {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}
