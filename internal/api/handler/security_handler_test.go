package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

func TestSecurityHandler_Token_Success(t *testing.T) {
	stub := &stubSecurityService{
		loginFn: func(ctx context.Context, login, password string) (string, *domain.Security, error) {
			if login != "admin" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", login, password)
			}
			return "token123", &domain.Security{ID: 1, Login: login, Name: "Admin", Role: domain.RoleAdministrator}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/v1/token", `{"login":"admin","password":"secret1"}`)

	if err := NewSecurityHandler(stub).Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data tokenResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Token != "token123" || resp.Data.User.Role != domain.RoleAdministrator {
		t.Fatalf("unexpected payload: %+v", resp.Data)
	}
	if containsKey(rec.Body.Bytes(), "password") {
		t.Fatalf("password must never be serialized")
	}
}

func TestSecurityHandler_Token_InvalidCredentials(t *testing.T) {
	stub := &stubSecurityService{
		loginFn: func(ctx context.Context, login, password string) (string, *domain.Security, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/v1/token", `{"login":"admin","password":"bad"}`)

	err := NewSecurityHandler(stub).Token(c)
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSecurityHandler_Register(t *testing.T) {
	stub := &stubSecurityService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Security, error) {
			if in.Login != "ana" || in.Role != domain.RoleUser || in.UserID == nil || *in.UserID != 3 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Security{ID: 2, Login: in.Login, Name: in.Name, Role: in.Role, UserID: in.UserID}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/v1/security",
		`{"login":"ana","password":"secret1","name":"Ana","role":"User","userId":3}`)

	if err := NewSecurityHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestSecurityHandler_Register_Validation(t *testing.T) {
	stub := &stubSecurityService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Security, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/v1/security",
		`{"login":"ana","password":"123","name":"Ana","role":"Root"}`)

	err := NewSecurityHandler(stub).Register(c)
	var de *domain.Error
	if !asDomainError(err, &de) || len(de.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", err)
	}
	if de.Fields[0] != "password must be at least 6 characters" || de.Fields[1] != "role must be one of: Administrator User" {
		t.Fatalf("unexpected fields: %v", de.Fields)
	}
}

func containsKey(body []byte, key string) bool {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return false
	}
	var walk func(v any) bool
	walk = func(v any) bool {
		switch x := v.(type) {
		case map[string]any:
			for k, child := range x {
				if k == key || walk(child) {
					return true
				}
			}
		case []any:
			for _, child := range x {
				if walk(child) {
					return true
				}
			}
		}
		return false
	}
	return walk(m)
}
