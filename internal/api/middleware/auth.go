package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/core/ports"
)

// HeaderClientToken is the header a device presents its standing key in.
const HeaderClientToken = "client-token"

// ContextKeyClient is the echo context key the resolved client is stored under.
const ContextKeyClient = "client"

// ClientAuth resolves the client-token header to a client record and injects
// it into the request context. Requests without a resolvable token never
// reach the handler.
func ClientAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderClientToken)

			client, err := auth.ResolveClient(c.Request().Context(), key)
			if err != nil {
				return err
			}

			c.Set(ContextKeyClient, client)
			return next(c)
		}
	}
}
