package v1

import (
	"github.com/crime-alert/backend/internal/config"
	"github.com/crime-alert/backend/internal/service"
	"github.com/crime-alert/backend/pkg/auth"
	"github.com/crime-alert/backend/pkg/pdf"

	"github.com/gin-gonic/gin"
)

// @title Crime Alert System API
// @version 1.0
// @description Backend API for citizen crime reporting and alerts

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	pdfGenerator *pdf.Generator
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
		pdfGenerator: pdf.NewGenerator(),
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initCrimeRoutes(v1)
	h.initLocationRoutes(v1)
	h.initStatsRoutes(v1)
}
