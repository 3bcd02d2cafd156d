package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dsfrGateway/internal/shared/auth"
)

// RegisterRoutes mounts the session socket, the component API, health and metrics.
func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws/session", NewSessionWebsocketHandler(deps))

	api := e.Group("/api", auth.Middleware(deps.Validator))
	api.POST("/actions", NewDispatchDescriptorHandler(deps))
	api.POST("/actions/:button", NewDispatchButtonHandler(deps))
	api.POST("/uploads/:component", NewUploadHandler(deps))
	api.GET("/forms/:form", NewFormMountHandler(deps))
	api.POST("/forms/:form/save", NewFormSaveHandler(deps))
	api.GET("/records/versions", NewRecordVersionsHandler(deps))
}
