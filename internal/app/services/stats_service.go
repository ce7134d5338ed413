package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
)

// PropertyStatsStore is the aggregate property persistence used by
// StatsService.
type PropertyStatsStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	CountDistinctLGAs(ctx context.Context) (int64, error)
	SumSoldPrices(ctx context.Context) (int64, error)
	OwnerStats(ctx context.Context, ownerID int64) (total, registeredOnly, listed, sold, revenue int64, err error)
}

// UserStatsStore is the aggregate user persistence used by StatsService.
type UserStatsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountVerifiedOwners(ctx context.Context) (int64, error)
}

// PendingCounter counts unresolved update requests.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// StatsService aggregates the dashboard and home-page counters.
type StatsService struct {
	propertyRepo PropertyStatsStore
	userRepo     UserStatsStore
	requestRepo  PendingCounter
	logger       zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(propertyRepo PropertyStatsStore, userRepo UserStatsStore, requestRepo PendingCounter, logger zerolog.Logger) *StatsService {
	return &StatsService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		logger:       logger,
	}
}

// AdminOverview aggregates the admin panel counters.
func (s *StatsService) AdminOverview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	totalProperties, err := s.propertyRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.propertyRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.propertyRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.requestRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	lgas, err := s.propertyRepo.CountDistinctLGAs(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.propertyRepo.SumSoldPrices(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminOverviewResponse{
		TotalProperties:       totalProperties,
		PropertiesByStatus:    byStatus,
		PropertiesByType:      byType,
		PendingUpdateRequests: pendingRequests,
		TotalUsers:            totalUsers,
		LGAsCovered:           lgas,
		TotalRevenue:          revenue,
	}, nil
}

// OwnerDashboard aggregates one owner's property counters.
func (s *StatsService) OwnerDashboard(ctx context.Context, ownerID int64) (*dto.OwnerDashboardResponse, error) {
	total, registeredOnly, listed, sold, revenue, err := s.propertyRepo.OwnerStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &dto.OwnerDashboardResponse{
		TotalProperties: total,
		RegisteredOnly:  registeredOnly,
		Listed:          listed,
		Sold:            sold,
		Revenue:         revenue,
	}, nil
}

// PublicStats aggregates the public home-page counters.
func (s *StatsService) PublicStats(ctx context.Context) (*dto.PublicStatsResponse, error) {
	properties, err := s.propertyRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := s.userRepo.CountVerifiedOwners(ctx)
	if err != nil {
		return nil, err
	}

	lgas, err := s.propertyRepo.CountDistinctLGAs(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.PublicStatsResponse{
		RegisteredProperties: properties,
		VerifiedOwners:       owners,
		LGAsCovered:          lgas,
	}, nil
}
