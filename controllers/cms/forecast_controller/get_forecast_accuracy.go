package forecast_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// GetForecastAccuracy godoc
// @Summary Get forecast accuracy
// @Description Grades stored forecasts against realized ledger actuals over a trailing window. No overlap is not an error: sample_size is 0 with zero errors.
// @Tags Admin - Forecasts
// @Produce json
// @Security BearerAuth
// @Param metric query string true "orders | revenue | average_order_value"
// @Param scope_id query string false "Branch id (empty = all branches)"
// @Param cohort query string false "Cohort id"
// @Param window query int false "Trailing compare window in days (default 30)"
// @Success 200 {object} models.ApiResponse{data=models.AccuracyResult}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/forecasts/accuracy [get]
func GetForecastAccuracy(c *gin.Context) {
	log.Printf("[admin.forecast-accuracy] start")

	metric := c.Query("metric")
	if !models.ValidMetric(metric) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown forecast metric"))
		return
	}

	window := 0
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid window, expected a positive day count"))
			return
		}
		window = parsed
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result, err := engine.Accuracy(ctx, metric, scopeParam(c.Query("scope_id")), c.Query("cohort"), window)
	if err != nil {
		log.Printf("[admin.forecast-accuracy] ERROR metric=%s err=%v", metric, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to evaluate forecast accuracy"))
		return
	}

	log.Printf("[admin.forecast-accuracy] respond 200 metric=%s samples=%d mae=%.4f mape=%.4f",
		metric, result.SampleSize, result.MeanAbsoluteError, result.MeanAbsolutePercentageError)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Forecast accuracy retrieved successfully", result))
}
