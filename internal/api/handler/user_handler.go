package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/response"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber   query     int     false  "Page number (default 1)"
// @Param        pageSize     query     int     false  "Page size (1-100, default 10)"
// @Param        searchName   query     string  false  "Case-insensitive name substring"
// @Param        searchEmail  query     string  false  "Case-insensitive email substring"
// @Param        hasTexts     query     bool    false  "Only users with (true) or without (false) texts"
// @Success      200          {object}  response.Envelope{data=[]userResponse}
// @Failure      400          {object}  response.Envelope
// @Failure      401          {object}  response.Envelope
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	q := newQueryParser(c)
	filter := ports.ListUsersFilter{
		SearchName:  q.String("searchName"),
		SearchEmail: q.String("searchEmail"),
		HasTexts:    q.BoolPtr("hasTexts"),
		PageNumber:  q.Int("pageNumber"),
		PageSize:    q.Int("pageSize"),
	}
	if err := q.Err(); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return response.Page(c, http.StatusOK, pagination.Map(page, toUserResponse),
		response.Success(fmt.Sprintf("found %d users", page.TotalCount)))
}

// Get handles GET /api/v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  response.Envelope{data=userResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toUserResponse(user), response.Success("user retrieved"))
}

// Create handles POST /api/v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  response.Envelope{data=userResponse}
// @Failure      400   {object}  response.Envelope
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Create(c.Request().Context(), ports.UserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusCreated, toUserResponse(user), response.Success("user created"))
}

// Update handles PUT /api/v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "User id"
// @Param        body  body      userRequest  true  "User"
// @Success      200   {object}  response.Envelope{data=userResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Update(c.Request().Context(), id, ports.UserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toUserResponse(user), response.Success("user updated"))
}

// Delete handles DELETE /api/v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, nil, response.Success(fmt.Sprintf("user %d deleted", id)))
}
