package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra/pkg/memcache"
	"yatra/pkg/utils"
)

type fakePasswordLookup struct{ changedAt int64 }

func (f fakePasswordLookup) PasswordChangedAt(context.Context, string) (int64, error) {
	return f.changedAt, nil
}

func newTestRouter(auth *Auth, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	handlers := []gin.HandlerFunc{auth.JWTAuthMiddleware()}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	r.GET("/private", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	userID := uuid.New()
	token, err := jwt.CreateToken(userID, "tourist")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	r := newTestRouter(NewAuth(jwt, memcache.NewRevokedTokens(), fakePasswordLookup{}))

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	w := doGet(r, token)
	if w.Code != http.StatusOK || w.Body.String() != userID.String() {
		t.Fatalf("expected 200 with user id, got %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("expected a trace id header")
	}
}

func TestJWTAuthMiddlewareRejectsRevokedAndStaleTokens(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	token, _ := jwt.CreateToken(uuid.New(), "tourist")
	claims, _ := jwt.ValidateToken(token)

	revoked := memcache.NewRevokedTokens()
	revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	if w := doGet(newTestRouter(NewAuth(jwt, revoked, nil)), token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to fail, got %d", w.Code)
	}

	future := time.Now().Add(time.Minute).Unix()
	if w := doGet(newTestRouter(NewAuth(jwt, nil, fakePasswordLookup{changedAt: future})), token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected token older than password change to fail, got %d", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	tourist, _ := jwt.CreateToken(uuid.New(), "tourist")
	agent, _ := jwt.CreateToken(uuid.New(), "agent")

	r := newTestRouter(NewAuth(jwt, nil, nil), "agent", "admin")
	if w := doGet(r, tourist); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tourist, got %d", w.Code)
	}
	if w := doGet(r, agent); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for agent, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("fourth request should be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("other clients have their own bucket")
	}
}

func TestRateLimiterCleanupKeepsSpentBuckets(t *testing.T) {
	rl := NewRateLimiter(10, time.Hour)
	for i := 0; i < 10; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	rl.visitors["1.2.3.4"].lastSeen = time.Now().Add(-11 * time.Minute)
	rl.Cleanup()

	if _, ok := rl.visitors["1.2.3.4"]; !ok {
		t.Fatalf("visitor evicted before its window elapsed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("burst restored after cleanup")
	}

	rl.visitors["1.2.3.4"].lastSeen = time.Now().Add(-61 * time.Minute)
	rl.Cleanup()
	if _, ok := rl.visitors["1.2.3.4"]; ok {
		t.Fatalf("visitor idle past the window should be evicted")
	}
}
