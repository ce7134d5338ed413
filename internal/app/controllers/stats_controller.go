package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/services"
	"github.com/akwareg/akwareg-backend/internal/middleware"
)

// StatsController serves the public counters and the owner dashboard
type StatsController struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// PublicStats returns the landing-page counters
// @Summary Public statistics
// @Description Returns registered property, verified owner and LGA coverage counters
// @Tags stats
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PublicStatsResponse} "Statistics"
// @Router /stats [get]
func (c *StatsController) PublicStats(ctx *gin.Context) {
	stats, err := c.statsService.PublicStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, "Statistics"))
}

// Dashboard returns the caller's portfolio summary
// @Summary Owner dashboard
// @Description Returns property counts and recorded sale revenue for the authenticated owner
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OwnerDashboardResponse} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *StatsController) Dashboard(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	dashboard, err := c.statsService.OwnerDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard, "Dashboard"))
}
