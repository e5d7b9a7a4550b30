package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crime-alert/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initStatsRoutes(api *gin.RouterGroup) {
	stats := api.Group("/stats", h.userIdentity, requireRole(domain.RolePolice, domain.RoleAdmin))
	{
		stats.GET("", h.getStatistics)
		stats.GET("/report", h.getStatisticsReport)
	}
}

// @Summary Crime statistics overview
// @Security UserAuth
// @Tags stats
// @Description Aggregated counts by category, severity, city and day; police and admin only
// @Produce json
// @Success 200 {object} domain.Statistics
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *Handler) getStatistics(c *gin.Context) {
	stats, err := h.services.Statistics.Get(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Download statistics report
// @Security UserAuth
// @Tags stats
// @Description Same aggregates as /stats rendered as a PDF attachment
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /stats/report [get]
func (h *Handler) getStatisticsReport(c *gin.Context) {
	stats, err := h.services.Statistics.Get(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	report, err := h.pdfGenerator.StatisticsReport(stats)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "failed to render report")
		return
	}

	filename := fmt.Sprintf("crime-statistics-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", report)
}
