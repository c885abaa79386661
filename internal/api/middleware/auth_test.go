package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"login":   "alice",
		"name":    "Alice",
		"role":    domain.RoleAdministrator,
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	c, called, err := runAuth(t, "Bearer "+sign(t, "secret", jwt.SigningMethodHS256, validClaims()))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(ContextLogin) != "alice" {
		t.Fatalf("login not set: %v", c.Get(ContextLogin))
	}
	if c.Get(ContextRole) != domain.RoleAdministrator {
		t.Fatalf("role not set")
	}
	if c.Get(ContextUserID) != int64(7) {
		t.Fatalf("user_id not set: %#v", c.Get(ContextUserID))
	}
}

func TestAuthMiddleware_NoUserIDClaim(t *testing.T) {
	claims := validClaims()
	delete(claims, "user_id")

	c, called, err := runAuth(t, "bearer "+sign(t, "secret", jwt.SigningMethodHS256, claims))
	if err != nil || !called {
		t.Fatalf("expected pass, got %v", err)
	}
	if c.Get(ContextUserID) != nil {
		t.Fatalf("user_id must be unset, got %v", c.Get(ContextUserID))
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExp := validClaims()
	delete(noExp, "exp")
	noRole := validClaims()
	delete(noRole, "role")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"garbage", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + sign(t, "other", jwt.SigningMethodHS256, validClaims())},
		{"wrong algorithm", "Bearer " + sign(t, "secret", jwt.SigningMethodHS512, validClaims())},
		{"expired", "Bearer " + sign(t, "secret", jwt.SigningMethodHS256, expired)},
		{"no expiry", "Bearer " + sign(t, "secret", jwt.SigningMethodHS256, noExp)},
		{"no role", "Bearer " + sign(t, "secret", jwt.SigningMethodHS256, noRole)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, called, err := runAuth(t, tt.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if domain.KindOf(err) != domain.KindUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestAuthMiddleware_ErrorIsDomainError(t *testing.T) {
	_, _, err := runAuth(t, "")
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "missing authorization header" {
		t.Fatalf("unexpected error: %v", err)
	}
}
