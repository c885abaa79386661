package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// dateLayouts are tried in order for date query parameters.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// queryParser collects query parameter errors so they surface together.
type queryParser struct {
	c    echo.Context
	errs []string
}

func newQueryParser(c echo.Context) *queryParser {
	return &queryParser{c: c}
}

func (q *queryParser) raw(name string) string {
	return strings.TrimSpace(q.c.QueryParam(name))
}

func (q *queryParser) String(name string) string {
	return q.raw(name)
}

// Int returns 0 when the parameter is absent. Paging falls back to defaults
// on out-of-range values, so only malformed numbers are errors.
func (q *queryParser) Int(name string) int {
	s := q.raw(name)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.errs = append(q.errs, name+" must be an integer")
		return 0
	}
	return n
}

func (q *queryParser) Int64Ptr(name string) *int64 {
	s := q.raw(name)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		q.errs = append(q.errs, name+" must be an integer")
		return nil
	}
	return &n
}

func (q *queryParser) Float64Ptr(name string) *float64 {
	s := q.raw(name)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		q.errs = append(q.errs, name+" must be a number")
		return nil
	}
	return &f
}

func (q *queryParser) BoolPtr(name string) *bool {
	s := q.raw(name)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.errs = append(q.errs, name+" must be true or false")
		return nil
	}
	return &b
}

func (q *queryParser) TimePtr(name string) *time.Time {
	s := q.raw(name)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	q.errs = append(q.errs, name+" must be a date (RFC 3339 or YYYY-MM-DD)")
	return nil
}

// Err returns the accumulated errors as one validation error, or nil.
func (q *queryParser) Err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.NewValidationError(q.errs...)
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
