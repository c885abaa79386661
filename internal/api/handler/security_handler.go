package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/response"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// SecurityHandler issues tokens and registers credentials.
type SecurityHandler struct {
	service ports.SecurityService
}

func NewSecurityHandler(service ports.SecurityService) *SecurityHandler {
	return &SecurityHandler{service: service}
}

// Token handles POST /api/v1/token.
//
// @Summary      Log in
// @Tags         security
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response.Envelope{data=tokenResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Router       /api/v1/token [post]
func (h *SecurityHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	token, sec, err := h.service.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, tokenResponse{Token: token, User: toSecurityResponse(sec)},
		response.Success("authenticated"))
}

// Register handles POST /api/v1/security.
//
// @Summary      Register credentials
// @Tags         security
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      securityRequest  true  "Credential"
// @Success      201   {object}  response.Envelope{data=securityResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Router       /api/v1/security [post]
func (h *SecurityHandler) Register(c echo.Context) error {
	var req securityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sec, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		UserID:   req.UserID,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusCreated, toSecurityResponse(sec), response.Success("credentials registered"))
}
