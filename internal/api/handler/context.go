package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/api/middleware"
	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// ctxClient extracts the client record injected by the ClientAuth middleware
// and fast-fails when it is absent (presence proves the middleware ran).
func ctxClient(c echo.Context) (*domain.Client, error) {
	client, _ := c.Get(middleware.ContextKeyClient).(*domain.Client)
	if client == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Bad Authentication")
	}
	return client, nil
}
