package forecast_controller

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/models"
	forecast "github.com/zeez-dotcom/laundryao-sub003/services/forecast_service"
)

// DownloadForecastReportPDF godoc
// @Summary Download forecast report PDF
// @Description Generate and download a PDF of the stored forecast horizon for one (metric, branch, cohort) key
// @Tags Admin - Forecasts
// @Produce octet-stream
// @Security BearerAuth
// @Param metric query string true "orders | revenue | average_order_value"
// @Param scope_id query string false "Branch id (empty = all branches)"
// @Param cohort query string false "Cohort id"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "No stored forecasts for this key"
// @Failure 500 {object} models.ApiResponse
// @Router /admin/forecasts/report [get]
func DownloadForecastReportPDF(c *gin.Context) {
	metric := c.Query("metric")
	log.Printf("[admin.forecast-report] request metric=%s", metric)

	if !models.ValidMetric(metric) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown forecast metric"))
		return
	}

	scope := scopeParam(c.Query("scope_id"))
	cohortID := c.Query("cohort")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	records, err := engine.List(ctx, metric, scope, cohortID, nil, nil)
	if err != nil {
		log.Printf("[admin.forecast-report] ERROR list err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch forecasts"))
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "No stored forecasts for this key"))
		return
	}

	cohort, _ := forecast.ResolveCohort(cohortID)
	pdfBuffer, err := generateForecastReportPDF(metric, scope, cohort, records)
	if err != nil {
		log.Printf("[admin.forecast-report] ERROR pdf err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate report"))
		return
	}

	filename := fmt.Sprintf("forecast-%s-%s.pdf", metric, records[0].GeneratedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Length", fmt.Sprintf("%d", pdfBuffer.Len()))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())

	log.Printf("[admin.forecast-report] report downloaded metric=%s records=%d", metric, len(records))
}

// generateForecastReportPDF renders the stored horizon as a simple table
// report with the run's key and generation time in the header.
func generateForecastReportPDF(metric string, scope *string, cohort *models.CohortFilter, records []models.ForecastRecord) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("FORECAST REPORT", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	scopeLabel := "All branches"
	if scope != nil {
		scopeLabel = "Branch " + *scope
	}
	cohortLabel := "All customers"
	if cohort != nil {
		cohortLabel = cohort.Label
	}

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Metric: %s", metric), props.Text{
				Size:  10,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Generated: %s", records[0].GeneratedAt.Format("Jan 02, 2006 15:04 MST")), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text(scopeLabel, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
		m.Col(6, func() {
			m.Text(cohortLabel, props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(8, func() {})

	// Table header
	m.Row(6, func() {
		m.Col(3, func() {
			m.Text("Target date", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(3, func() {
			m.Text("Forecast", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(3, func() {
			m.Text("Lower", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(3, func() {
			m.Text("Upper", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	for _, record := range records {
		record := record
		m.Row(5, func() {
			m.Col(3, func() {
				m.Text(record.TargetDate.Format("Jan 02, 2006"), props.Text{Size: 8, Color: darkGray})
			})
			m.Col(3, func() {
				m.Text(fmt.Sprintf("%.2f", record.Value), props.Text{Size: 8, Color: darkGray, Align: consts.Right})
			})
			m.Col(3, func() {
				m.Text(fmt.Sprintf("%.2f", record.LowerBound), props.Text{Size: 8, Color: mediumGray, Align: consts.Right})
			})
			m.Col(3, func() {
				m.Text(fmt.Sprintf("%.2f", record.UpperBound), props.Text{Size: 8, Color: mediumGray, Align: consts.Right})
			})
		})
	}

	m.Row(8, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Horizon: %d days | Report generated %s", len(records), time.Now().UTC().Format("Jan 02, 2006 15:04 MST")), props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buffer, err := m.Output()
	if err != nil {
		return nil, err
	}
	return &buffer, nil
}
