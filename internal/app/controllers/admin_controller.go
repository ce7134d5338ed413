package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/services"
	"github.com/akwareg/akwareg-backend/internal/middleware"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// AdminController handles the verification desk and user administration
type AdminController struct {
	propertyService     *services.PropertyService
	verificationService *services.VerificationService
	userService         *services.UserService
	statsService        *services.StatsService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	propertyService *services.PropertyService,
	verificationService *services.VerificationService,
	userService *services.UserService,
	statsService *services.StatsService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		propertyService:     propertyService,
		verificationService: verificationService,
		userService:         userService,
		statsService:        statsService,
		logger:              logger,
	}
}

// ListProperties lists properties in any status
// @Summary List properties for review
// @Description Lists properties across all statuses with the same filters as public browsing plus a status filter
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Verification status" Enums(pending, under_review, approved, rejected)
// @Param q query string false "Substring search over title, address and owner name"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyListResponse} "Properties"
// @Failure 403 {object} dto.ErrorResponse "Officials only"
// @Router /admin/properties [get]
func (c *AdminController) ListProperties(ctx *gin.Context) {
	var filters dto.PropertyFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	list, err := c.propertyService.AdminList(ctx.Request.Context(), &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Properties"))
}

// StartReview moves a pending property under review
// @Summary Start reviewing a property
// @Description Moves a pending property to under_review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyResponse} "Review started"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Failure 409 {object} dto.ErrorResponse "Property is not pending"
// @Router /admin/properties/{id}/review [put]
func (c *AdminController) StartReview(ctx *gin.Context) {
	reviewerID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	property, err := c.verificationService.StartReview(ctx.Request.Context(), reviewerID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(property, "Review started"))
}

// VerifyProperty approves or rejects a property
// @Summary Verify a property
// @Description Approves or rejects a property, recording the verifying official and notes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body dto.VerifyPropertyRequest true "Verification decision"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyResponse} "Property verified"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Failure 409 {object} dto.ErrorResponse "Property already verified"
// @Router /admin/properties/{id}/verify [put]
func (c *AdminController) VerifyProperty(ctx *gin.Context) {
	reviewerID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VerifyPropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	property, err := c.verificationService.Verify(ctx.Request.Context(), reviewerID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(property, "Property verified"))
}

// ListUpdateRequests lists pending availability requests
// @Summary List pending update requests
// @Description Lists unresolved availability update requests, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateRequestListResponse} "Pending requests"
// @Failure 403 {object} dto.ErrorResponse "Officials only"
// @Router /admin/update-requests [get]
func (c *AdminController) ListUpdateRequests(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	list, err := c.verificationService.ListPendingRequests(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Pending update requests"))
}

// ResolveUpdateRequest approves or rejects an availability request
// @Summary Resolve an update request
// @Description Approves or rejects a pending availability request; approval applies the requested status to the property
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Update request ID"
// @Param request body dto.ResolveUpdateRequestRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateRequestResponse} "Request resolved"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already resolved"
// @Router /admin/update-requests/{id} [put]
func (c *AdminController) ResolveUpdateRequest(ctx *gin.Context) {
	adminID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveUpdateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	request, err := c.verificationService.ResolveUpdateRequest(ctx.Request.Context(), adminID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request, "Update request resolved"))
}

// ListUsers lists registered users
// @Summary List users
// @Description Lists users with optional role and search filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Substring search over name and email"
// @Param role query string false "Role filter" Enums(property_owner, government_official, admin)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Officials only"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var filters dto.AdminUserFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	list, err := c.userService.ListUsers(ctx.Request.Context(), &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Users"))
}

// VerifyUser toggles a user's verified flag
// @Summary Verify a user
// @Description Marks a user account as verified or unverified
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.VerifyUserRequest true "Verified flag"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/verify [put]
func (c *AdminController) VerifyUser(ctx *gin.Context) {
	adminID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VerifyUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.SetVerified(ctx.Request.Context(), adminID, id, req.IsVerified)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user, "User updated"))
}

// Overview returns registry-wide statistics
// @Summary Registry overview
// @Description Returns counts by status and type, pending request totals, user totals, LGA coverage and recorded revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminOverviewResponse} "Overview"
// @Failure 403 {object} dto.ErrorResponse "Officials only"
// @Router /admin/overview [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	overview, err := c.statsService.AdminOverview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview, "Registry overview"))
}
