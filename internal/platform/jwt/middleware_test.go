package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testCookie = "token"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// TestAuthRequired_MissingToken verifies a request without cookie or bearer header is rejected.
func TestAuthRequired_MissingToken(t *testing.T) {
	gen := NewGenerator("test-secret", time.Hour)

	tests := []struct {
		name       string
		authHeader string
		cookie     *http.Cookie
	}{
		{"nothing", "", nil},
		{"basic auth", "Basic dXNlcjpwYXNz", nil},
		{"bearer lowercase", "bearer token123", nil},
		{"empty cookie (logged out)", "", &http.Cookie{Name: testCookie, Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != nil {
				c.Request.AddCookie(tt.cookie)
			}

			AuthRequired(gen, testCookie)(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if _, ok := PrincipalFrom(c); ok {
				t.Error("expected no principal")
			}
		})
	}
}

// TestAuthRequired_InvalidToken verifies tampered or expired tokens are rejected.
func TestAuthRequired_InvalidToken(t *testing.T) {
	gen := NewGenerator("test-secret", time.Hour)
	wrong, _ := NewGenerator("wrong-secret", time.Hour).GenerateToken("acc-1")
	expiredGen := NewGenerator("test-secret", time.Hour)
	expiredGen.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _ := expiredGen.GenerateToken("acc-1")

	for name, token := range map[string]string{
		"random string": "randomstring",
		"wrong secret":  wrong,
		"expired":       expired,
	} {
		t.Run(name, func(t *testing.T) {
			c, w := newTestContext(t)
			c.Request.AddCookie(&http.Cookie{Name: testCookie, Value: token})

			AuthRequired(gen, testCookie)(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestAuthRequired_ValidCookie verifies the principal is set from the cookie token.
func TestAuthRequired_ValidCookie(t *testing.T) {
	gen := NewGenerator("test-secret", time.Hour)
	token, err := gen.GenerateToken("acc-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, w := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: testCookie, Value: token})

	AuthRequired(gen, testCookie)(c)

	if c.IsAborted() {
		t.Fatalf("expected request not to be aborted, response: %s", w.Body.String())
	}
	p, ok := PrincipalFrom(c)
	if !ok {
		t.Fatal("expected principal in context")
	}
	if p.AccountID != "acc-42" {
		t.Errorf("expected account acc-42, got %q", p.AccountID)
	}
	if p.ExpiresAt.Before(time.Now()) {
		t.Errorf("expected expiry in the future, got %v", p.ExpiresAt)
	}
}

// TestAuthRequired_BearerFallback verifies the Authorization header is used when no cookie is sent.
func TestAuthRequired_BearerFallback(t *testing.T) {
	gen := NewGenerator("test-secret", time.Hour)
	token, _ := gen.GenerateToken("acc-7")

	c, _ := newTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	AuthRequired(gen, testCookie)(c)

	p, ok := PrincipalFrom(c)
	if !ok || p.AccountID != "acc-7" {
		t.Errorf("expected principal acc-7, got %+v (ok=%v)", p, ok)
	}
}
