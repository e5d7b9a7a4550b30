package v1

import (
	"errors"
	"net/http"

	"github.com/crime-alert/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initLocationRoutes(api *gin.RouterGroup) {
	location := api.Group("/location", h.userIdentity)
	{
		location.POST("/update", h.updateLocation)
	}
}

type updateLocationRequest struct {
	Latitude  float64  `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64  `json:"longitude" binding:"required,min=-180,max=180"`
	Accuracy  *float64 `json:"accuracy" binding:"omitempty,min=0"`
}

// @Summary Update current location
// @Security UserAuth
// @Tags location
// @Description Stores the caller's last known position and appends it to the location log
// @Accept json
// @Produce json
// @Param input body updateLocationRequest true "coordinates"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /location/update [post]
func (h *Handler) updateLocation(c *gin.Context) {
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	err = h.services.Locations.Update(c.Request.Context(), userID, req.Latitude, req.Longitude, req.Accuracy)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			newErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	newMessageResponse(c, http.StatusOK, "location updated")
}
