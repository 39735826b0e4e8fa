package forecast_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	forecast_cache "github.com/zeez-dotcom/laundryao-sub003/cache"
	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/models"
	forecast "github.com/zeez-dotcom/laundryao-sub003/services/forecast_service"
)

// TriggerForecastRunRequest is the run trigger body. Zero window sizes
// fall back to the engine defaults (90 days history, 30 days horizon).
type TriggerForecastRunRequest struct {
	Metric      string `json:"metric" binding:"required"`
	ScopeID     string `json:"scope_id"`
	Cohort      string `json:"cohort"`
	HistoryDays int    `json:"history_days"`
	HorizonDays int    `json:"horizon_days"`
}

// TriggerForecastRun godoc
// @Summary Trigger a forecast run
// @Description Rebuilds the stored forecast horizon for one (metric, branch, cohort) key. Runs for the same key are serialized through an advisory lock; a concurrent duplicate gets 409.
// @Tags Admin - Forecasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TriggerForecastRunRequest true "Run parameters"
// @Success 200 {object} models.ApiResponse{data=[]models.ForecastRecord}
// @Failure 400 {object} models.ApiResponse "Unknown metric or bad body"
// @Failure 409 {object} models.ApiResponse "Run already in progress for this key"
// @Failure 500 {object} models.ApiResponse
// @Router /admin/forecasts/run [post]
func TriggerForecastRun(c *gin.Context) {
	log.Printf("[admin.forecast-run] start")

	var req TriggerForecastRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	if !models.ValidMetric(req.Metric) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown forecast metric"))
		return
	}

	scope := scopeParam(req.ScopeID)
	cohort, _ := forecast.ResolveCohort(req.Cohort)
	runKey := forecast.RunKey(req.Metric, scope, forecast.CohortKey(cohort))

	// Replace is delete-then-insert; two interleaved runs for one key can
	// corrupt its record set, so the key is locked for the whole run.
	ctx, cancel := config.WithCustomTimeout(60 * time.Second)
	defer cancel()

	release, acquired, err := locker.TryAcquire(ctx, runKey)
	if err != nil {
		log.Printf("[admin.forecast-run] ERROR acquire lock key=%s err=%v", runKey, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to acquire run lock"))
		return
	}
	if !acquired {
		log.Printf("[admin.forecast-run] key=%s already locked", runKey)
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A run for this forecast key is already in progress"))
		return
	}
	defer release()

	records, err := engine.Run(ctx, forecast.RunParams{
		Metric:      req.Metric,
		ScopeID:     scope,
		CohortID:    req.Cohort,
		HistoryDays: req.HistoryDays,
		HorizonDays: req.HorizonDays,
	})
	if err != nil {
		log.Printf("[admin.forecast-run] ERROR run key=%s err=%v", runKey, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Forecast run failed"))
		return
	}

	forecast_cache.Invalidate(runKey)

	log.Printf("[admin.forecast-run] respond 200 key=%s records=%d", runKey, len(records))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Forecast run completed", records))
}
