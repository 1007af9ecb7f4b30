package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/core/domain"
	"github.com/quickmsg/messaging-system/internal/core/ports"
)

// ClientHandler handles device registration and removal. Both endpoints
// authenticate with the owning user's username/password headers rather than a
// client token.
type ClientHandler struct {
	auth ports.AuthService
}

func NewClientHandler(auth ports.AuthService) *ClientHandler {
	return &ClientHandler{auth: auth}
}

type newClientRequest struct {
	ClientName string `json:"clientName" validate:"required"`
}

type newClientResponse struct {
	Status    int    `json:"status"`
	Name      string `json:"name"`
	ClientID  string `json:"clientID"`
	ClientKey string `json:"clientKey"`
}

// New handles POST /clients/new.
func (h *ClientHandler) New(c echo.Context) error {
	username := c.Request().Header.Get("username")
	password := c.Request().Header.Get("password")

	var req newClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"request must contain headers: 'username', 'password', and body key 'clientName'")
	}
	if username == "" || password == "" || c.Validate(&req) != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"request must contain headers: 'username', 'password', and body key 'clientName'")
	}

	client, err := h.auth.CreateClient(c.Request().Context(), username, password, req.ClientName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newClientResponse{
		Status:    http.StatusOK,
		Name:      client.Name,
		ClientID:  client.ID,
		ClientKey: client.Key,
	})
}

// Delete handles DELETE /clients/delete/:clientID.
func (h *ClientHandler) Delete(c echo.Context) error {
	username := c.Request().Header.Get("username")
	password := c.Request().Header.Get("password")
	if username == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest,
			"request must contain headers: 'username' and 'password'")
	}

	clientID := c.Param("clientID")
	if err := h.auth.DeleteClient(c.Request().Context(), username, password, clientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not delete or find: "+clientID)
		}
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK, Msg: "Deleted: " + clientID})
}
