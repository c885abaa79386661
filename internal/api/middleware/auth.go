package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// Context keys set by Auth. RequireRoles reads the role; RequestLogger
// records all three.
const (
	ContextLogin  = "login"
	ContextRole   = "role"
	ContextUserID = "user_id"
)

// Auth validates the bearer JWT and copies its claims into the echo context.
// user_id is only set when the credential is linked to a user.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized("missing authorization header")
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(raw) == "" {
				return unauthorized("invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(token *jwt.Token) (any, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return unauthorized("invalid token")
			}

			login, _ := claims[ContextLogin].(string)
			role, _ := claims[ContextRole].(string)
			if login == "" || role == "" {
				return unauthorized("token missing identity claims")
			}

			c.Set(ContextLogin, login)
			c.Set(ContextRole, role)
			if id, ok := claims[ContextUserID].(float64); ok && id > 0 {
				c.Set(ContextUserID, int64(id))
			}

			return next(c)
		}
	}
}

func unauthorized(msg string) error {
	return &domain.Error{Kind: domain.KindUnauthorized, Message: msg}
}
