package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/response"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

const genericErrorMessage = "an unexpected error occurred, please try again later"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as a response envelope. Domain errors map by kind; echo errors keep
// their code. Unexpected errors are logged and, unless exposeDetails is set,
// answered with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msgs := resolveError(err, log, c, exposeDetails)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = response.Error(c, code, msgs...)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, exposeDetails bool) (int, []response.Message) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		typ := response.TypeError
		if he.Code < http.StatusInternalServerError {
			typ = response.TypeWarning
		}
		return he.Code, []response.Message{{Type: typ, Description: fmt.Sprintf("%v", he.Message)}}
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindBusiness:
			return http.StatusBadRequest, []response.Message{{Type: response.TypeBusinessError, Description: de.Message}}
		case domain.KindValidation:
			return http.StatusBadRequest, validationMessages(de)
		case domain.KindNotFound:
			return http.StatusNotFound, []response.Message{{Type: response.TypeWarning, Description: de.Message}}
		case domain.KindUnauthorized:
			return http.StatusUnauthorized, []response.Message{{Type: response.TypeError, Description: de.Message}}
		case domain.KindForbidden:
			return http.StatusForbidden, []response.Message{{Type: response.TypeError, Description: de.Message}}
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	desc := genericErrorMessage
	if exposeDetails {
		desc = err.Error()
	}
	return http.StatusInternalServerError, []response.Message{{Type: response.TypeError, Description: desc}}
}

func validationMessages(de *domain.Error) []response.Message {
	if len(de.Fields) == 0 {
		return []response.Message{{Type: response.TypeValidationError, Description: de.Message}}
	}
	msgs := make([]response.Message, len(de.Fields))
	for i, f := range de.Fields {
		msgs[i] = response.Message{Type: response.TypeValidationError, Description: f}
	}
	return msgs
}
