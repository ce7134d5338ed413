package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/services"
	"github.com/akwareg/akwareg-backend/internal/middleware"
)

// PropertyController handles property registration and browsing
type PropertyController struct {
	propertyService     *services.PropertyService
	verificationService *services.VerificationService
	logger              zerolog.Logger
}

// NewPropertyController creates a new PropertyController
func NewPropertyController(propertyService *services.PropertyService, verificationService *services.VerificationService, logger zerolog.Logger) *PropertyController {
	return &PropertyController{
		propertyService:     propertyService,
		verificationService: verificationService,
		logger:              logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Create registers a new property
// @Summary Register a property
// @Description Registers a new property for the authenticated owner; the property starts pending verification
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePropertyRequest true "Property details"
// @Success 201 {object} dto.APIResponse{data=dto.PropertyResponse} "Property registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or missing price"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /properties [post]
func (c *PropertyController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreatePropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	property, err := c.propertyService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(property, "Property registered"))
}

// Browse lists approved properties
// @Summary Browse approved properties
// @Description Lists approved properties with search, type, LGA, price-range, listing-flag and view filters
// @Tags properties
// @Produce json
// @Param q query string false "Substring search over title, address and owner name"
// @Param property_type query string false "Property type" Enums(land, building, commercial, residential)
// @Param lga query string false "Local government area"
// @Param min_price query int false "Minimum sale price"
// @Param max_price query int false "Maximum sale price"
// @Param for_sale query bool false "For-sale flag"
// @Param for_lease query bool false "For-lease flag"
// @Param view query string false "Listing view" Enums(listed, registered)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyListResponse} "Matching properties"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Router /properties [get]
func (c *PropertyController) Browse(ctx *gin.Context) {
	var filters dto.PropertyFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	list, err := c.propertyService.Browse(ctx.Request.Context(), &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Properties"))
}

// ListMine lists the caller's properties
// @Summary List own properties
// @Description Lists the authenticated owner's properties in any status, including the sold view
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param view query string false "Listing view" Enums(listed, registered, sold)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyListResponse} "Own properties"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /properties/mine [get]
func (c *PropertyController) ListMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var filters dto.PropertyFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	list, err := c.propertyService.ListMine(ctx.Request.Context(), userID, &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Own properties"))
}

// GetByID retrieves one property
// @Summary Get property details
// @Description Returns a property with its owner, documents and pending update request. Unapproved properties are visible only to their owner and officials.
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyResponse} "Property details"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Router /properties/{id} [get]
func (c *PropertyController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Viewer identity is optional on this route
	viewerID, _ := middleware.GetUserID(ctx)
	viewerRole := middleware.GetUserRole(ctx)

	property, err := c.propertyService.GetByID(ctx.Request.Context(), id, viewerID, viewerRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(property, "Property details"))
}

// Update edits a property
// @Summary Update a property
// @Description Updates a property's descriptive and listing fields; only the owner may edit
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body dto.UpdatePropertyRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyResponse} "Updated property"
// @Failure 403 {object} dto.ErrorResponse "Not the property owner"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Router /properties/{id} [put]
func (c *PropertyController) Update(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	property, err := c.propertyService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(property, "Property updated"))
}

// UploadDocument attaches a title document
// @Summary Upload a title document
// @Description Uploads a title document (multipart) for the owner's property
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param document_type formData string true "Document type" Enums(certificate_of_occupancy, deed_of_assignment, survey_plan, building_approval, other)
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse} "Document uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unknown document type"
// @Failure 403 {object} dto.ErrorResponse "Not the property owner"
// @Router /properties/{id}/documents [post]
func (c *PropertyController) UploadDocument(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	documentType := ctx.PostForm("document_type")
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Document file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	document, err := c.propertyService.UploadDocument(ctx.Request.Context(), userID, id, documentType, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(document, "Document uploaded"))
}

// DeleteDocument removes a title document
// @Summary Delete a title document
// @Description Removes a document from an owner's property before verification
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} dto.APIResponse "Document deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the property owner"
// @Failure 409 {object} dto.ErrorResponse "Property already verified"
// @Router /properties/{id}/documents/{docId} [delete]
func (c *PropertyController) DeleteDocument(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	docID, ok := parseIDParam(ctx, "docId")
	if !ok {
		return
	}

	if err := c.propertyService.DeleteDocument(ctx.Request.Context(), userID, id, docID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Document deleted"))
}

// UploadImages appends gallery images
// @Summary Upload property images
// @Description Uploads one or more images (multipart) appended to the property's ordered gallery
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param images formData file true "Image files"
// @Success 200 {object} dto.APIResponse{data=dto.PropertyResponse} "Images added"
// @Failure 400 {object} dto.ErrorResponse "No image files or non-image upload"
// @Failure 403 {object} dto.ErrorResponse "Not the property owner"
// @Router /properties/{id}/images [post]
func (c *PropertyController) UploadImages(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Multipart form is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	property, err := c.propertyService.UploadImages(ctx.Request.Context(), userID, id, form.File["images"])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(property, "Images added"))
}

// SubmitUpdateRequest files an availability change request
// @Summary Submit an availability update request
// @Description Files a sold/unavailable request for an approved property; a still-pending request is replaced
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body dto.CreateUpdateRequestRequest true "Requested change"
// @Success 201 {object} dto.APIResponse{data=dto.UpdateRequestResponse} "Request submitted"
// @Failure 403 {object} dto.ErrorResponse "Not the property owner"
// @Failure 409 {object} dto.ErrorResponse "Property is not approved"
// @Router /properties/{id}/update-request [post]
func (c *PropertyController) SubmitUpdateRequest(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateUpdateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	request, err := c.verificationService.SubmitUpdateRequest(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request, "Update request submitted"))
}
