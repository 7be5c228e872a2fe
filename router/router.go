package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	catalogController "github.com/er-knight/leetcodedaily/pkg/catalog/controller"
	"github.com/er-knight/leetcodedaily/pkg/middleware"
	schedController "github.com/er-knight/leetcodedaily/pkg/schedule/controller"
)

func New(
	e *echo.Echo,
	log *zap.Logger,
	adminToken string,
	catalogCtrl catalogController.CatalogController,
	schedCtrl schedController.ScheduleController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log))

	e.GET("/health", healthCtrl.Health)

	api := e.Group("")
	api.GET("/problems", catalogCtrl.ListProblems)
	api.GET("/schedule", schedCtrl.List)
	api.GET("/schedule/export", schedCtrl.Export)

	admin := middleware.AdminToken(adminToken)
	api.POST("/catalog/sync", catalogCtrl.Sync, admin)
	api.POST("/schedule", schedCtrl.Generate, admin)
	return e
}
