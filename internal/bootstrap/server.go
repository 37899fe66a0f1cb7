package bootstrap

import (
	"net/http"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	httpecho "github.com/YaRavva/Fiction-Library-sub007/internal/interfaces/http/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func NewHTTPServer(runSync app.RunSync, inspect app.Inspect, defaultBatchSize int, logger logrus.FieldLogger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("1M"))

	syncHandler := httpecho.NewSyncHandler(runSync, defaultBatchSize, logger)
	inspectHandler := httpecho.NewInspectHandler(inspect)

	httpecho.RegisterRoutes(server, syncHandler, inspectHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}
