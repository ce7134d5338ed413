package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// UserAdminStore is the user persistence used by UserService.
type UserAdminStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, query, role string, offset uint64, limit int) ([]models.User, int64, error)
	SetUserVerified(ctx context.Context, id int64, verified bool) error
}

// UserService handles administrative user operations.
type UserService struct {
	userRepo UserAdminStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserAdminStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers retrieves accounts matching the admin filters.
func (s *UserService) ListUsers(ctx context.Context, filters *dto.AdminUserFilters) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filters.Page, filters.PageSize)

	users, totalItems, err := s.userRepo.ListUsers(ctx, filters.Query, filters.Role, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.FromUser(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Pagination: helpers.NewPaginationInfo(totalItems, filters.Page, filters.PageSize),
	}, nil
}

// SetVerified records an account verification decision.
func (s *UserService) SetVerified(ctx context.Context, adminID, userID int64, verified bool) (*dto.UserResponse, error) {
	if err := s.userRepo.SetUserVerified(ctx, userID, verified); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("adminID", adminID).Bool("verified", verified).Msg("User verification updated")

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromUser(user)
	return &resp, nil
}
