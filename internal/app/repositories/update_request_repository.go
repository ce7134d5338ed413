package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/logger"
)

const updateRequestColumns = "id, property_id, new_status, reason, sold_price, admin_approved, admin_notes, requested_at, resolved_by, resolved_at"

func scanUpdateRequest(row pgx.Row) (*models.UpdateRequest, error) {
	var req models.UpdateRequest
	err := row.Scan(
		&req.ID, &req.PropertyID, &req.NewStatus, &req.Reason, &req.SoldPrice,
		&req.AdminApproved, &req.AdminNotes, &req.RequestedAt, &req.ResolvedBy, &req.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestRepository handles availability update request database
// operations.
type UpdateRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUpdateRequestRepository creates a new UpdateRequestRepository
func NewUpdateRequestRepository(db *pgxpool.Pool) *UpdateRequestRepository {
	return &UpdateRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateReplacingPending stores a new update request, discarding any
// still-pending request for the same property so the latest submission
// wins.
func (r *UpdateRequestRepository) CreateReplacingPending(ctx context.Context, req *models.UpdateRequest) (*models.UpdateRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deleteSql, deleteArgs, err := r.sb.Delete("property_update_requests").
		Where(squirrel.Eq{"property_id": req.PropertyID}).
		Where("admin_approved IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete pending request query: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteSql, deleteArgs...); err != nil {
		logger.Error().Err(err).Int64("propertyID", req.PropertyID).Msg("Error discarding pending update request")
		return nil, fmt.Errorf("error discarding pending update request: %w", err)
	}

	insertSql, insertArgs, err := r.sb.Insert("property_update_requests").
		Columns("property_id", "new_status", "reason", "sold_price", "requested_at").
		Values(req.PropertyID, req.NewStatus, req.Reason, req.SoldPrice, time.Now()).
		Suffix("RETURNING id, requested_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create update request query: %w", err)
	}
	if err := tx.QueryRow(ctx, insertSql, insertArgs...).Scan(&req.ID, &req.RequestedAt); err != nil {
		logger.Error().Err(err).Int64("propertyID", req.PropertyID).Msg("Error executing create update request query")
		return nil, fmt.Errorf("error creating update request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit update request transaction: %w", err)
	}

	return req, nil
}

// GetRequestByID retrieves an update request
func (r *UpdateRequestRepository) GetRequestByID(ctx context.Context, id int64) (*models.UpdateRequest, error) {
	sql, args, err := r.sb.Select(updateRequestColumns).
		From("property_update_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get update request query: %w", err)
	}

	req, err := scanUpdateRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUpdateRequestNotFound
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error scanning update request row")
		return nil, fmt.Errorf("error retrieving update request: %w", err)
	}

	return req, nil
}

// PendingRequest pairs an update request with its property title for
// the admin review queue.
type PendingRequest struct {
	Request       models.UpdateRequest
	PropertyTitle string
}

// ListPending retrieves unresolved update requests, oldest first.
func (r *UpdateRequestRepository) ListPending(ctx context.Context, offset uint64, limit int) ([]PendingRequest, int64, error) {
	var totalItems int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM property_update_requests WHERE admin_approved IS NULL").Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending update requests: %w", err)
	}
	if totalItems == 0 {
		return []PendingRequest{}, 0, nil
	}

	sql, args, err := r.sb.Select(
		"r.id", "r.property_id", "r.new_status", "r.reason", "r.sold_price",
		"r.admin_approved", "r.admin_notes", "r.requested_at", "r.resolved_by", "r.resolved_at",
		"p.title").
		From("property_update_requests r").
		Join("properties p ON r.property_id = p.id").
		Where("r.admin_approved IS NULL").
		OrderBy("r.requested_at ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list pending requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list pending requests query")
		return nil, 0, fmt.Errorf("failed to query pending update requests: %w", err)
	}
	defer rows.Close()

	var pending []PendingRequest
	for rows.Next() {
		var item PendingRequest
		req := &item.Request
		err := rows.Scan(
			&req.ID, &req.PropertyID, &req.NewStatus, &req.Reason, &req.SoldPrice,
			&req.AdminApproved, &req.AdminNotes, &req.RequestedAt, &req.ResolvedBy, &req.ResolvedAt,
			&item.PropertyTitle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pending request row: %w", err)
		}
		pending = append(pending, item)
	}

	return pending, totalItems, rows.Err()
}

// CountPending returns the number of unresolved update requests
func (r *UpdateRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM property_update_requests WHERE admin_approved IS NULL").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending update requests: %w", err)
	}
	return count, nil
}

// Approve resolves a pending request and applies its availability
// change to the property in one transaction. For sold requests the
// property's sold_at and sold_price are recorded as well.
func (r *UpdateRequestRepository) Approve(ctx context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := r.resolveTx(ctx, tx, id, resolvedBy, true, notes)
	if err != nil {
		return nil, err
	}

	propertyUpdate := r.sb.Update("properties").
		Set("availability_status", req.NewStatus).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": req.PropertyID})
	if req.NewStatus == models.AvailabilitySold {
		propertyUpdate = propertyUpdate.Set("sold_at", time.Now())
		if req.SoldPrice != nil {
			propertyUpdate = propertyUpdate.Set("sold_price", *req.SoldPrice)
		}
	}

	updateSql, updateArgs, err := propertyUpdate.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build apply availability query: %w", err)
	}
	tag, err := tx.Exec(ctx, updateSql, updateArgs...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error applying availability change")
		return nil, fmt.Errorf("error applying availability change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrPropertyNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit approve transaction: %w", err)
	}

	return req, nil
}

// Reject resolves a pending request without touching the property.
func (r *UpdateRequestRepository) Reject(ctx context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := r.resolveTx(ctx, tx, id, resolvedBy, false, notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reject transaction: %w", err)
	}

	return req, nil
}

// resolveTx marks a pending request resolved and returns its final
// state. A request that is already resolved yields
// ErrUpdateRequestResolved.
func (r *UpdateRequestRepository) resolveTx(ctx context.Context, tx pgx.Tx, id, resolvedBy int64, approved bool, notes string) (*models.UpdateRequest, error) {
	sql, args, err := r.sb.Update("property_update_requests").
		Set("admin_approved", approved).
		Set("admin_notes", notes).
		Set("resolved_by", resolvedBy).
		Set("resolved_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Where("admin_approved IS NULL").
		Suffix("RETURNING " + updateRequestColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build resolve request query: %w", err)
	}

	req, err := scanUpdateRequest(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetRequestByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.ErrUpdateRequestResolved
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error resolving update request")
		return nil, fmt.Errorf("error resolving update request: %w", err)
	}

	return req, nil
}
