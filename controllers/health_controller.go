package controllers

import (
	"net/http"

	"plantchatapi/services/health"

	"github.com/gin-gonic/gin"
)

var healthSrv health.HealthService

// SetHealthService initializes the health service instance.
func SetHealthService(srv health.HealthService) {
	healthSrv = srv
}

// checkHealth reports per-database reachability
// @Summary Health check
// @Description Probes the central database and every registered plant database concurrently
// @Tags Health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router /api/v1/health [get]
func checkHealth(c *gin.Context) {
	report := healthSrv.Check(c.Request.Context())
	status := http.StatusOK
	if report.Status == health.StatusUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// RegisterHealthRoutes registers the health check endpoint.
func RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", checkHealth)
}
