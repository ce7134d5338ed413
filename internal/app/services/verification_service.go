package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/repositories"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// VerificationStore is the property persistence used by
// VerificationService.
type VerificationStore interface {
	GetPropertyByID(ctx context.Context, id int64) (*models.Property, error)
	TransitionStatus(ctx context.Context, id int64, from, to models.PropertyStatus, verifiedBy *int64, notes *string) error
}

// UpdateRequestStore is the update request persistence used by
// VerificationService.
type UpdateRequestStore interface {
	CreateReplacingPending(ctx context.Context, req *models.UpdateRequest) (*models.UpdateRequest, error)
	ListPending(ctx context.Context, offset uint64, limit int) ([]repositories.PendingRequest, int64, error)
	Approve(ctx context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error)
	Reject(ctx context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error)
}

// VerificationService handles the verification lifecycle and
// availability update requests.
type VerificationService struct {
	propertyRepo VerificationStore
	requestRepo  UpdateRequestStore
	logger       zerolog.Logger
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(propertyRepo VerificationStore, requestRepo UpdateRequestStore, logger zerolog.Logger) *VerificationService {
	return &VerificationService{
		propertyRepo: propertyRepo,
		requestRepo:  requestRepo,
		logger:       logger,
	}
}

// StartReview moves a pending property into review.
func (s *VerificationService) StartReview(ctx context.Context, reviewerID, propertyID int64) (*dto.PropertyResponse, error) {
	return s.transition(ctx, reviewerID, propertyID, models.StatusUnderReview, nil)
}

// Verify records a final verification decision. Approve and reject are
// terminal: once decided, a property cannot re-enter the pipeline.
func (s *VerificationService) Verify(ctx context.Context, reviewerID, propertyID int64, req *dto.VerifyPropertyRequest) (*dto.PropertyResponse, error) {
	target := models.StatusRejected
	if req.Action == "approve" {
		target = models.StatusApproved
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	return s.transition(ctx, reviewerID, propertyID, target, notes)
}

func (s *VerificationService) transition(ctx context.Context, reviewerID, propertyID int64, target models.PropertyStatus, notes *string) (*dto.PropertyResponse, error) {
	property, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if !property.Status.CanTransitionTo(target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"property status "+string(property.Status)+" does not allow "+string(target))
	}

	if err := s.propertyRepo.TransitionStatus(ctx, propertyID, property.Status, target, &reviewerID, notes); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("propertyID", propertyID).
		Int64("reviewerID", reviewerID).
		Str("from", string(property.Status)).
		Str("to", string(target)).
		Msg("Property status transitioned")

	updated, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProperty(updated)
	return &resp, nil
}

// SubmitUpdateRequest files an availability change for an approved
// property. A still-pending request for the same property is replaced.
func (s *VerificationService) SubmitUpdateRequest(ctx context.Context, ownerID, propertyID int64, req *dto.CreateUpdateRequestRequest) (*dto.UpdateRequestResponse, error) {
	property, err := s.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.ErrNotPropertyOwner
	}
	if property.Status != models.StatusApproved {
		return nil, apperrors.ErrPropertyNotApproved
	}

	newStatus := models.AvailabilityStatus(req.NewStatus)
	if newStatus == models.AvailabilitySold && req.SoldPrice == nil && property.Price == nil {
		return nil, apperrors.NewBadRequestError("sold_price is required for an unpriced property")
	}

	request := &models.UpdateRequest{
		PropertyID: propertyID,
		NewStatus:  newStatus,
		Reason:     req.Reason,
		SoldPrice:  req.SoldPrice,
	}

	request, err = s.requestRepo.CreateReplacingPending(ctx, request)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("propertyID", propertyID).Int64("requestID", request.ID).Str("newStatus", req.NewStatus).Msg("Update request submitted")

	resp := dto.FromUpdateRequest(request)
	return &resp, nil
}

// ListPendingRequests retrieves the admin review queue of unresolved
// update requests, oldest first.
func (s *VerificationService) ListPendingRequests(ctx context.Context, page, pageSize int) (*dto.UpdateRequestListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	pending, totalItems, err := s.requestRepo.ListPending(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	requests := make([]dto.UpdateRequestResponse, 0, len(pending))
	for i := range pending {
		item := dto.FromUpdateRequest(&pending[i].Request)
		item.PropertyTitle = pending[i].PropertyTitle
		requests = append(requests, item)
	}

	return &dto.UpdateRequestListResponse{
		Requests:   requests,
		Pagination: helpers.NewPaginationInfo(totalItems, page, pageSize),
	}, nil
}

// ResolveUpdateRequest applies an admin decision. Approval copies the
// requested availability onto the property; rejection only records the
// decision.
func (s *VerificationService) ResolveUpdateRequest(ctx context.Context, adminID, requestID int64, req *dto.ResolveUpdateRequestRequest) (*dto.UpdateRequestResponse, error) {
	var request *models.UpdateRequest
	var err error

	if req.Action == "approve" {
		request, err = s.requestRepo.Approve(ctx, requestID, adminID, req.AdminNotes)
	} else {
		request, err = s.requestRepo.Reject(ctx, requestID, adminID, req.AdminNotes)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Int64("adminID", adminID).
		Str("action", req.Action).
		Msg("Update request resolved")

	resp := dto.FromUpdateRequest(request)
	return &resp, nil
}
