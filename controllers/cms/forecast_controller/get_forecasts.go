package forecast_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	forecast_cache "github.com/zeez-dotcom/laundryao-sub003/cache"
	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/models"
	forecast "github.com/zeez-dotcom/laundryao-sub003/services/forecast_service"
)

// GetForecasts godoc
// @Summary Get stored forecasts
// @Description Returns the stored forecast horizon for one (metric, branch, cohort) key, ascending by target date, optionally bounded by start/end (YYYY-MM-DD, half-open)
// @Tags Admin - Forecasts
// @Produce json
// @Security BearerAuth
// @Param metric query string true "orders | revenue | average_order_value"
// @Param scope_id query string false "Branch id (empty = all branches)"
// @Param cohort query string false "Cohort id (all, highValue, recurring, newCustomers)"
// @Param start query string false "Lower bound, inclusive"
// @Param end query string false "Upper bound, exclusive"
// @Success 200 {object} models.ApiResponse{data=[]models.ForecastRecord}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/forecasts [get]
func GetForecasts(c *gin.Context) {
	log.Printf("[admin.forecast-list] start")

	metric := c.Query("metric")
	if !models.ValidMetric(metric) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown forecast metric"))
		return
	}

	start, ok := dateParam(c.Query("start"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid start date, expected YYYY-MM-DD"))
		return
	}
	end, ok := dateParam(c.Query("end"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid end date, expected YYYY-MM-DD"))
		return
	}

	scope := scopeParam(c.Query("scope_id"))
	cohortID := c.Query("cohort")
	cohort, _ := forecast.ResolveCohort(cohortID)
	runKey := forecast.RunKey(metric, scope, forecast.CohortKey(cohort))
	cacheKey := forecast_cache.Key(runKey, c.Query("start")+".."+c.Query("end"))

	if records, ok := forecast_cache.GetList(cacheKey); ok {
		log.Printf("[admin.forecast-list] respond 200 key=%s records=%d (cache)", runKey, len(records))
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Forecasts retrieved successfully", records))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	records, err := engine.List(ctx, metric, scope, cohortID, start, end)
	if err != nil {
		log.Printf("[admin.forecast-list] ERROR key=%s err=%v", runKey, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch forecasts"))
		return
	}

	forecast_cache.SetList(cacheKey, records)

	log.Printf("[admin.forecast-list] respond 200 key=%s records=%d", runKey, len(records))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Forecasts retrieved successfully", records))
}
