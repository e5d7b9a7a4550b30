package v1

import (
	"net/http"
	"time"

	"github.com/crime-alert/backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultNearbyRadiusMeters = 3000
	defaultHeatmapWindowHours = 168
)

func (h *Handler) initCrimeRoutes(api *gin.RouterGroup) {
	crimes := api.Group("/crimes", h.userIdentity)
	{
		crimes.POST("", h.createCrime)
		crimes.GET("/nearby", h.getNearbyCrimes)
		crimes.GET("/heatmap", h.getCrimeHeatmap)
	}
}

type createCrimeRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"max=2000"`
	Category     string  `json:"category"`
	Severity     string  `json:"severity" binding:"omitempty,oneof=minor moderate severe"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude    float64 `json:"longitude" binding:"required,min=-180,max=180"`
	IncidentTime string  `json:"incident_time"`
}

// @Summary Report a crime
// @Security UserAuth
// @Tags crimes
// @Accept json
// @Produce json
// @Param input body createCrimeRequest true "crime report"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /crimes [post]
func (h *Handler) createCrime(c *gin.Context) {
	var req createCrimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	var incidentTime time.Time
	if req.IncidentTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.IncidentTime)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "incident_time must be RFC3339")
			return
		}
		incidentTime = parsed
	}

	reporterID, err := getUserID(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := h.services.Crimes.Create(c.Request.Context(), service.CreateCrimeInput{
		ReporterID:   reporterID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Severity:     req.Severity,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IncidentTime: incidentTime,
	})
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String(), "message": "crime reported"})
}

type nearbyQuery struct {
	Latitude  float64 `form:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `form:"longitude" binding:"required,min=-180,max=180"`
	Radius    int     `form:"radius" binding:"omitempty,min=1,max=50000"`
}

// @Summary List crimes near a point
// @Security UserAuth
// @Tags crimes
// @Produce json
// @Param latitude query number true "latitude"
// @Param longitude query number true "longitude"
// @Param radius query int false "search radius in meters" default(3000)
// @Success 200 {array} domain.Crime
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /crimes/nearby [get]
func (h *Handler) getNearbyCrimes(c *gin.Context) {
	var q nearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	if q.Radius == 0 {
		q.Radius = defaultNearbyRadiusMeters
	}

	crimes, err := h.services.Crimes.GetNearby(c.Request.Context(), q.Latitude, q.Longitude, q.Radius)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"crimes": crimes, "count": len(crimes)})
}

type heatmapQuery struct {
	Latitude    float64 `form:"latitude" binding:"required,min=-90,max=90"`
	Longitude   float64 `form:"longitude" binding:"required,min=-180,max=180"`
	Radius      int     `form:"radius" binding:"omitempty,min=1,max=50000"`
	WindowHours int     `form:"windowHours" binding:"omitempty,min=1,max=8760"`
}

// @Summary Crime density heatmap around a point
// @Security UserAuth
// @Tags crimes
// @Produce json
// @Param latitude query number true "latitude"
// @Param longitude query number true "longitude"
// @Param radius query int false "radius in meters" default(3000)
// @Param windowHours query int false "lookback window in hours" default(168)
// @Success 200 {array} domain.HeatPoint
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /crimes/heatmap [get]
func (h *Handler) getCrimeHeatmap(c *gin.Context) {
	var q heatmapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	if q.Radius == 0 {
		q.Radius = defaultNearbyRadiusMeters
	}
	if q.WindowHours == 0 {
		q.WindowHours = defaultHeatmapWindowHours
	}

	points, err := h.services.Crimes.GetHeatmap(c.Request.Context(), q.Latitude, q.Longitude, q.Radius, q.WindowHours)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}
