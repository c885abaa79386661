// Package response renders the JSON envelope shared by every API endpoint:
//
//	{"data": ..., "messages": [{"type": "...", "description": "..."}], "pagination": {...}}
package response

import (
	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

// Message types.
const (
	TypeSuccess         = "Success"
	TypeWarning         = "Warning"
	TypeError           = "Error"
	TypeValidationError = "ValidationError"
	TypeBusinessError   = "BusinessError"
	TypeInformation     = "Information"
)

type Message struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Pagination struct {
	TotalCount      int  `json:"totalCount"`
	PageSize        int  `json:"pageSize"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Envelope wraps every response body. Pagination is set on list responses only.
type Envelope struct {
	Data       any         `json:"data"`
	Messages   []Message   `json:"messages"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func Success(description string) Message {
	return Message{Type: TypeSuccess, Description: description}
}

func Information(description string) Message {
	return Message{Type: TypeInformation, Description: description}
}

// JSON writes data with the given status and messages.
func JSON(c echo.Context, status int, data any, msgs ...Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	return c.JSON(status, Envelope{Data: data, Messages: msgs})
}

// Page writes one page of items together with its pagination metadata.
func Page[T any](c echo.Context, status int, p *pagination.Page[T], msgs ...Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	return c.JSON(status, Envelope{
		Data:     p.Items,
		Messages: msgs,
		Pagination: &Pagination{
			TotalCount:      p.TotalCount,
			PageSize:        p.PageSize,
			CurrentPage:     p.CurrentPage,
			TotalPages:      p.TotalPages,
			HasNextPage:     p.HasNextPage,
			HasPreviousPage: p.HasPreviousPage,
		},
	})
}

// Error writes an envelope with a nil data field.
func Error(c echo.Context, status int, msgs ...Message) error {
	return JSON(c, status, nil, msgs...)
}
