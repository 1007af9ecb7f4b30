package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// statusEnvelope is the canonical JSON envelope for all API failures:
// {"status": <code>, "msg": "<message>"}.
type statusEnvelope struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent status envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, statusEnvelope{Status: code, Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrBadAuthentication):
		return http.StatusUnauthorized, "Bad Authentication"
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnprocessableEntity, "Bad Credentials"
	case errors.Is(err, domain.ErrMessageNotFound), errors.Is(err, domain.ErrClientNotFound):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "storage failure"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
