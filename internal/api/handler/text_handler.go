package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/response"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

type TextHandler struct {
	service ports.TextService
}

func NewTextHandler(service ports.TextService) *TextHandler {
	return &TextHandler{service: service}
}

// List handles GET /api/v1/texts.
//
// @Summary      List texts
// @Tags         texts
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int     false  "Page number (default 1)"
// @Param        pageSize    query     int     false  "Page size (1-100, default 10)"
// @Param        userId      query     int     false  "Owner user id"
// @Param        searchText  query     string  false  "Case-insensitive content substring"
// @Param        fromDate    query     string  false  "Submitted at or after (RFC 3339 or YYYY-MM-DD)"
// @Param        toDate      query     string  false  "Submitted at or before (RFC 3339 or YYYY-MM-DD)"
// @Success      200         {object}  response.Envelope{data=[]textResponse}
// @Failure      400         {object}  response.Envelope
// @Router       /api/v1/texts [get]
func (h *TextHandler) List(c echo.Context) error {
	q := newQueryParser(c)
	filter := ports.ListTextsFilter{
		UserID:     q.Int64Ptr("userId"),
		SearchText: q.String("searchText"),
		FromDate:   q.TimePtr("fromDate"),
		ToDate:     q.TimePtr("toDate"),
		PageNumber: q.Int("pageNumber"),
		PageSize:   q.Int("pageSize"),
	}
	if err := q.Err(); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return response.Page(c, http.StatusOK, pagination.Map(page, toTextResponse),
		response.Success(fmt.Sprintf("found %d texts", page.TotalCount)))
}

// Get handles GET /api/v1/texts/:id.
//
// @Summary      Get a text
// @Tags         texts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Text id"
// @Success      200  {object}  response.Envelope{data=textResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/texts/{id} [get]
func (h *TextHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	text, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toTextResponse(text), response.Success("text retrieved"))
}

// Create handles POST /api/v1/texts.
//
// @Summary      Submit a text
// @Tags         texts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      textRequest  true  "Text"
// @Success      201   {object}  response.Envelope{data=textResponse}
// @Failure      400   {object}  response.Envelope
// @Router       /api/v1/texts [post]
func (h *TextHandler) Create(c echo.Context) error {
	var req textRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	text, err := h.service.Create(c.Request().Context(), ports.TextInput{Content: req.Content, UserID: req.UserID})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusCreated, toTextResponse(text), response.Success("text created"))
}

// Update handles PUT /api/v1/texts/:id.
//
// @Summary      Update a text
// @Tags         texts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Text id"
// @Param        body  body      textUpdateRequest  true  "Text"
// @Success      200   {object}  response.Envelope{data=textResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /api/v1/texts/{id} [put]
func (h *TextHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req textUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	text, err := h.service.Update(c.Request().Context(), id, ports.TextInput{Content: req.Content, UserID: req.UserID})
	if err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, toTextResponse(text), response.Success("text updated"))
}

// Delete handles DELETE /api/v1/texts/:id. Predictions of the text go with it.
//
// @Summary      Delete a text and its predictions
// @Tags         texts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Text id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/v1/texts/{id} [delete]
func (h *TextHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.JSON(c, http.StatusOK, nil, response.Success(fmt.Sprintf("text %d deleted", id)))
}
