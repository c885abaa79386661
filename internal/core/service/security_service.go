package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// securityService implements credential registration and login.
type securityService struct {
	uows      ports.UnitOfWorkFactory
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewSecurityService(uows ports.UnitOfWorkFactory, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) ports.SecurityService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &securityService{uows: uows, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *securityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Security, error) {
	login := strings.TrimSpace(in.Login)
	switch {
	case login == "":
		return nil, domain.NewBusinessError("login is required")
	case in.Password == "":
		return nil, domain.NewBusinessError("password is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.NewBusinessError("name is required")
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewBusinessError("role %q is not valid", role)
	}

	uow := s.uows.New()
	_, err := uow.Securities().GetByLogin(ctx, login)
	switch {
	case err == nil:
		return nil, domain.NewBusinessError("login %s already exists", login)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("register credentials: %w", err)
	}

	if in.UserID != nil {
		if err := ensureUserExists(ctx, uow, *in.UserID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	security := &domain.Security{
		Login:        login,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		UserID:       in.UserID,
		CreatedAt:    time.Now().UTC(),
	}
	uow.Securities().Add(security)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("register credentials: %w", err)
	}

	s.log.Info().Str("login", security.Login).Str("role", security.Role).Msg("credentials registered")
	return security, nil
}

func (s *securityService) Login(ctx context.Context, login, password string) (string, *domain.Security, error) {
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	security, err := s.uows.New().Securities().GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(security.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(security)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, security, nil
}

func (s *securityService) generateToken(sec *domain.Security) (string, error) {
	claims := jwt.MapClaims{
		"login": sec.Login,
		"name":  sec.Name,
		"role":  sec.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	if sec.UserID != nil {
		claims["user_id"] = *sec.UserID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
