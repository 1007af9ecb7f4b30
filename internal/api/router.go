package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/quickmsg/messaging-system/internal/api/handler"
	"github.com/quickmsg/messaging-system/internal/api/middleware"
	"github.com/quickmsg/messaging-system/internal/core/ports"
	"github.com/quickmsg/messaging-system/internal/infrastructure/storage"
)

// Deps carries the collaborators the router wires into handlers. Services and
// the registry are constructed once in main so their lifecycle (admin
// bootstrap, registry shutdown) stays explicit.
type Deps struct {
	Auth     ports.AuthService
	Messages ports.MessageService
	Registry ports.SubscriptionRegistry
	FilesDir string
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("messaging"))

	// --- Handlers ---
	messageHandler := handler.NewMessageHandler(d.Messages)
	clientHandler := handler.NewClientHandler(d.Auth)
	subscribeHandler := handler.NewSubscribeHandler(d.Registry)
	healthHandler := handler.NewHealthHandler()

	clientAuth := middleware.ClientAuth(d.Auth)

	// --- Message routes (client-token authenticated) ---
	e.POST("/upload", messageHandler.Upload, clientAuth)
	e.GET("/messages", messageHandler.ListOlder, clientAuth)
	e.GET("/messages/new", messageHandler.ListNewer, clientAuth)
	e.DELETE("/messages/delete/:messageID", messageHandler.Delete, clientAuth)
	e.GET("/subscribe", subscribeHandler.Subscribe, clientAuth)

	// --- Client management (username/password authenticated) ---
	e.POST("/clients/new", clientHandler.New)
	e.DELETE("/clients/delete/:clientID", clientHandler.Delete)

	// --- Attachments, probes, metrics ---
	e.Static(storage.PublicPrefix, d.FilesDir)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
