package cms_routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeez-dotcom/laundryao-sub003/controllers/cms/forecast_controller"
	"github.com/zeez-dotcom/laundryao-sub003/middleware"
)

// SetupForecastRoutes mounts the forecast engine's admin surface. Triggering
// a run is rate limited harder than reads since each run rewrites a whole
// storage partition.
func SetupForecastRoutes(rg *gin.RouterGroup) {
	forecasts := rg.Group("/admin/forecasts")
	forecasts.Use(middleware.AdminAuthMiddleware())

	forecasts.POST("/run", middleware.RateLimiter(10, time.Minute), forecast_controller.TriggerForecastRun)

	reads := forecasts.Group("")
	reads.Use(middleware.RateLimiter(60, time.Minute))
	{
		reads.GET("", forecast_controller.GetForecasts)
		reads.GET("/accuracy", forecast_controller.GetForecastAccuracy)
		reads.GET("/report", forecast_controller.DownloadForecastReportPDF)
	}
}
