package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/repositories"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/filestorage"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// DefaultState is the state recorded for every registered property.
const DefaultState = "Akwa Ibom"

// PropertyStore is the property persistence used by PropertyService.
type PropertyStore interface {
	CreateProperty(ctx context.Context, p *models.Property) (*models.Property, error)
	GetPropertyByID(ctx context.Context, id int64) (*models.Property, error)
	SearchProperties(ctx context.Context, filters repositories.PropertySearchFilters) ([]models.Property, int64, error)
	UpdatePropertyFields(ctx context.Context, id int64, fields map[string]interface{}) error
	AppendImages(ctx context.Context, id int64, urls []string) error
}

// DocumentStore is the document persistence used by PropertyService.
type DocumentStore interface {
	CreateDocument(ctx context.Context, d *models.PropertyDocument) (*models.PropertyDocument, error)
	GetDocumentByID(ctx context.Context, id int64) (*models.PropertyDocument, error)
	DeleteDocument(ctx context.Context, id int64) error
}

// PropertyService handles property registration, browsing and uploads.
type PropertyService struct {
	propertyRepo PropertyStore
	documentRepo DocumentStore
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo PropertyStore, documentRepo DocumentStore, storage filestorage.FileStorage, logger zerolog.Logger) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		documentRepo: documentRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create registers a new property for the owner. The property always
// starts pending verification, in the default state.
func (s *PropertyService) Create(ctx context.Context, ownerID int64, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if req.IsForSale && req.Price == nil {
		return nil, apperrors.NewBadRequestError("price is required for a property listed for sale")
	}
	if req.IsForLease && req.LeasePriceAnnual == nil {
		return nil, apperrors.NewBadRequestError("lease_price_annual is required for a property listed for lease")
	}

	property := &models.Property{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		PropertyType: models.PropertyType(req.PropertyType),
		Address:      strings.TrimSpace(req.Address),
		LGA:          strings.TrimSpace(req.LGA),
		State:        DefaultState,
		SizeSqm:      req.SizeSqm,
		OwnerID:      ownerID,
		Status:       models.StatusPending,
		IsForSale:    req.IsForSale,
		IsForLease:   req.IsForLease,
		Images:       []string{},
	}

	// Prices are meaningful only with their listing flag
	if req.IsForSale {
		property.Price = req.Price
	}
	if req.IsForLease {
		property.LeasePriceAnnual = req.LeasePriceAnnual
	}

	property, err := s.propertyRepo.CreateProperty(ctx, property)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("propertyID", property.ID).Int64("ownerID", ownerID).Msg("Property registered")

	resp := dto.FromProperty(property)
	return &resp, nil
}

// GetByID retrieves a property. Properties that are not yet approved
// are visible only to their owner and to officials.
func (s *PropertyService) GetByID(ctx context.Context, id, viewerID int64, viewerRole models.Role) (*dto.PropertyResponse, error) {
	property, err := s.propertyRepo.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.Status != models.StatusApproved &&
		property.OwnerID != viewerID &&
		!viewerRole.CanVerifyProperties() {
		return nil, apperrors.ErrPropertyNotFound
	}

	resp := dto.FromProperty(property)
	return &resp, nil
}

// Browse lists approved properties matching the public filters.
func (s *PropertyService) Browse(ctx context.Context, filters *dto.PropertyFilters) (*dto.PropertyListResponse, error) {
	// The sold view exposes off-market properties and is owner-only
	if filters.View == "sold" {
		return nil, apperrors.NewBadRequestError("The sold view is only available on your own properties")
	}
	search := buildSearchFilters(filters)
	search.Status = string(models.StatusApproved)
	return s.search(ctx, filters, search)
}

// ListMine lists the owner's properties in any status.
func (s *PropertyService) ListMine(ctx context.Context, ownerID int64, filters *dto.PropertyFilters) (*dto.PropertyListResponse, error) {
	search := buildSearchFilters(filters)
	search.OwnerID = &ownerID
	return s.search(ctx, filters, search)
}

// AdminList lists properties in any status with the given filters.
func (s *PropertyService) AdminList(ctx context.Context, filters *dto.PropertyFilters) (*dto.PropertyListResponse, error) {
	search := buildSearchFilters(filters)
	search.Status = filters.Status
	return s.search(ctx, filters, search)
}

func (s *PropertyService) search(ctx context.Context, filters *dto.PropertyFilters, search repositories.PropertySearchFilters) (*dto.PropertyListResponse, error) {
	properties, totalItems, err := s.propertyRepo.SearchProperties(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, dto.FromProperty(&properties[i]))
	}

	return &dto.PropertyListResponse{
		Properties: responses,
		Pagination: helpers.NewPaginationInfo(totalItems, filters.Page, filters.PageSize),
	}, nil
}

// buildSearchFilters maps the request filters onto the repository query.
func buildSearchFilters(f *dto.PropertyFilters) repositories.PropertySearchFilters {
	offset, limit := helpers.CalculateOffsetLimit(f.Page, f.PageSize)
	return repositories.PropertySearchFilters{
		Query:        f.Query,
		PropertyType: f.PropertyType,
		LGA:          f.LGA,
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		ForSale:      f.ForSale,
		ForLease:     f.ForLease,
		View:         f.View,
		Offset:       offset,
		Limit:        limit,
	}
}

// Update edits a property's descriptive and listing fields. Only the
// owner may edit.
func (s *PropertyService) Update(ctx context.Context, ownerID, propertyID int64, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	property, err := s.ownedProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if req.LGA != nil {
		fields["lga"] = strings.TrimSpace(*req.LGA)
	}
	if req.State != nil {
		fields["state"] = strings.TrimSpace(*req.State)
	}
	if req.SizeSqm != nil {
		fields["size_sqm"] = *req.SizeSqm
	}

	forSale := property.IsForSale
	if req.IsForSale != nil {
		forSale = *req.IsForSale
		fields["is_for_sale"] = forSale
	}
	forLease := property.IsForLease
	if req.IsForLease != nil {
		forLease = *req.IsForLease
		fields["is_for_lease"] = forLease
	}

	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.LeasePriceAnnual != nil {
		fields["lease_price_annual"] = *req.LeasePriceAnnual
	}

	// A delisted side loses its price
	if !forSale {
		fields["price"] = nil
	}
	if !forLease {
		fields["lease_price_annual"] = nil
	}

	if forSale && fields["price"] == nil && property.Price == nil {
		return nil, apperrors.NewBadRequestError("price is required for a property listed for sale")
	}
	if forLease && fields["lease_price_annual"] == nil && property.LeasePriceAnnual == nil {
		return nil, apperrors.NewBadRequestError("lease_price_annual is required for a property listed for lease")
	}

	if err := s.propertyRepo.UpdatePropertyFields(ctx, propertyID, fields); err != nil {
		return nil, err
	}

	updated, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProperty(updated)
	return &resp, nil
}

// UploadDocument stores a title document for the property.
func (s *PropertyService) UploadDocument(ctx context.Context, ownerID, propertyID int64, documentType string, fileHeader *multipart.FileHeader) (*dto.DocumentResponse, error) {
	docType := models.DocumentType(documentType)
	if !docType.Valid() {
		return nil, apperrors.NewBadRequestError("unknown document type")
	}
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("document file is required")
	}

	if _, err := s.ownedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, filestorage.SubPathDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	document := &models.PropertyDocument{
		PropertyID:   propertyID,
		DocumentType: docType,
		FileName:     fileHeader.Filename,
		FileURL:      fileURL,
	}

	document, err = s.documentRepo.CreateDocument(ctx, document)
	if err != nil {
		// The record failed, do not leave the file orphaned
		_ = s.storage.DeleteFile(fileURL)
		return nil, err
	}

	s.logger.Info().Int64("propertyID", propertyID).Int64("documentID", document.ID).Str("type", documentType).Msg("Document uploaded")

	resp := dto.FromPropertyDocument(document)
	return &resp, nil
}

// DeleteDocument removes a document. Documents are removable only
// before the property has been verified.
func (s *PropertyService) DeleteDocument(ctx context.Context, ownerID, propertyID, documentID int64) error {
	property, err := s.ownedProperty(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}

	if property.Status == models.StatusApproved || property.Status == models.StatusRejected {
		return apperrors.NewConflictError("documents cannot be removed after verification")
	}

	document, err := s.documentRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if document.PropertyID != propertyID {
		return apperrors.ErrDocumentNotFound
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(document.FileURL); err != nil {
		s.logger.Warn().Err(err).Str("fileURL", document.FileURL).Msg("Failed to delete stored document file")
	}

	return nil
}

// UploadImages appends uploaded images to the property's gallery in
// the order given.
func (s *PropertyService) UploadImages(ctx context.Context, ownerID, propertyID int64, files []*multipart.FileHeader) (*dto.PropertyResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("at least one image file is required")
	}

	if _, err := s.ownedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s is not an image", fileHeader.Filename))
		}

		url, err := s.storage.SaveFileWithPath(fileHeader, filestorage.SubPathImages)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		urls = append(urls, url)
	}

	if err := s.propertyRepo.AppendImages(ctx, propertyID, urls); err != nil {
		return nil, err
	}

	updated, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProperty(updated)
	return &resp, nil
}

// ownedProperty loads a property and checks the caller owns it.
func (s *PropertyService) ownedProperty(ctx context.Context, ownerID, propertyID int64) (*models.Property, error) {
	property, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.ErrNotPropertyOwner
	}
	return property, nil
}
