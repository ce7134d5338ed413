package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/logger"
)

// PropertySearchFilters narrows a property listing query. All set
// filters are combined with AND.
type PropertySearchFilters struct {
	// Case-insensitive substring over title, address and owner name
	Query string

	PropertyType string
	LGA          string
	Status       string

	// Price bounds; only properties with a price match when either is set
	MinPrice *int64
	MaxPrice *int64

	ForSale  *bool
	ForLease *bool

	// View is one of "", "listed", "registered", "sold"
	View string

	// OwnerID restricts to a single owner's properties
	OwnerID *int64

	Offset uint64
	Limit  int
}

// PropertyRepository handles property database operations
type PropertyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var propertyColumns = []string{
	"p.id", "p.title", "p.description", "p.property_type", "p.address",
	"p.lga", "p.state", "p.size_sqm", "p.owner_id", "p.status",
	"p.is_for_sale", "p.is_for_lease", "p.price", "p.lease_price_annual",
	"p.images", "p.availability_status", "p.verification_notes",
	"p.verified_by", "p.verified_at", "p.sold_price", "p.sold_at",
	"p.created_at", "p.updated_at",
}

func scanProperty(row pgx.Row, withOwner bool) (*models.Property, error) {
	var p models.Property
	dest := []interface{}{
		&p.ID, &p.Title, &p.Description, &p.PropertyType, &p.Address,
		&p.LGA, &p.State, &p.SizeSqm, &p.OwnerID, &p.Status,
		&p.IsForSale, &p.IsForLease, &p.Price, &p.LeasePriceAnnual,
		&p.Images, &p.AvailabilityStatus, &p.VerificationNotes,
		&p.VerifiedBy, &p.VerifiedAt, &p.SoldPrice, &p.SoldAt,
		&p.CreatedAt, &p.UpdatedAt,
	}

	var ownerName, ownerEmail, ownerPhone string
	if withOwner {
		dest = append(dest, &ownerName, &ownerEmail, &ownerPhone)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if withOwner {
		p.Owner = &models.User{
			ID:       p.OwnerID,
			FullName: ownerName,
			Email:    ownerEmail,
			Phone:    ownerPhone,
		}
	}
	return &p, nil
}

// CreateProperty inserts a new property and returns it with generated fields.
func (r *PropertyRepository) CreateProperty(ctx context.Context, p *models.Property) (*models.Property, error) {
	now := time.Now()
	images := p.Images
	if images == nil {
		images = []string{}
	}

	sql, args, err := r.sb.Insert("properties").
		Columns("title", "description", "property_type", "address", "lga", "state",
			"size_sqm", "owner_id", "status", "is_for_sale", "is_for_lease",
			"price", "lease_price_annual", "images", "created_at", "updated_at").
		Values(p.Title, p.Description, p.PropertyType, p.Address, p.LGA, p.State,
			p.SizeSqm, p.OwnerID, p.Status, p.IsForSale, p.IsForLease,
			p.Price, p.LeasePriceAnnual, images, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create property SQL")
		return nil, fmt.Errorf("failed to build create property query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("ownerID", p.OwnerID).Msg("Error executing create property query")
		return nil, fmt.Errorf("error creating property: %w", err)
	}

	p.Images = images
	return p, nil
}

// GetPropertyByID retrieves a property with its owner, documents and
// pending update request.
func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	columns := append(append([]string{}, propertyColumns...), "u.full_name", "u.email", "u.phone")
	sql, args, err := r.sb.Select(columns...).
		From("properties p").
		Join("users u ON p.owner_id = u.id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get property query: %w", err)
	}

	p, err := scanProperty(r.db.QueryRow(ctx, sql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPropertyNotFound
		}
		logger.Error().Err(err).Int64("propertyID", id).Msg("Error scanning property row")
		return nil, fmt.Errorf("error retrieving property: %w", err)
	}

	documents, err := r.listDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Documents = documents

	pending, err := r.getPendingUpdateRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	p.UpdateRequest = pending

	return p, nil
}

// buildSearchWhere translates the filters into a squirrel conjunction.
func buildSearchWhere(f PropertySearchFilters) squirrel.And {
	where := squirrel.And{}

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + q + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.address": pattern},
			squirrel.ILike{"u.full_name": pattern},
		})
	}
	if f.PropertyType != "" {
		where = append(where, squirrel.Eq{"p.property_type": f.PropertyType})
	}
	if f.LGA != "" {
		where = append(where, squirrel.Eq{"p.lga": f.LGA})
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"p.status": f.Status})
	}
	if f.MinPrice != nil {
		where = append(where, squirrel.GtOrEq{"p.price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		where = append(where, squirrel.LtOrEq{"p.price": *f.MaxPrice})
	}
	if f.ForSale != nil {
		where = append(where, squirrel.Eq{"p.is_for_sale": *f.ForSale})
	}
	if f.ForLease != nil {
		where = append(where, squirrel.Eq{"p.is_for_lease": *f.ForLease})
	}
	if f.OwnerID != nil {
		where = append(where, squirrel.Eq{"p.owner_id": *f.OwnerID})
	}

	switch f.View {
	case "listed":
		where = append(where, squirrel.Expr("(p.is_for_sale OR p.is_for_lease)"))
	case "registered":
		where = append(where, squirrel.Eq{"p.is_for_sale": false, "p.is_for_lease": false})
	case "sold":
		where = append(where, squirrel.Eq{"p.availability_status": models.AvailabilitySold})
	}

	return where
}

// SearchProperties retrieves properties matching the filters, newest
// first, with the total match count.
func (r *PropertyRepository) SearchProperties(ctx context.Context, filters PropertySearchFilters) ([]models.Property, int64, error) {
	where := buildSearchWhere(filters)

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("properties p").
		Join("users u ON p.owner_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count properties SQL")
		return nil, 0, fmt.Errorf("failed to build count properties query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count properties query")
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	if totalItems == 0 {
		return []models.Property{}, 0, nil
	}

	columns := append(append([]string{}, propertyColumns...), "u.full_name", "u.email", "u.phone")
	querySql, queryArgs, err := r.sb.Select(columns...).
		From("properties p").
		Join("users u ON p.owner_id = u.id").
		Where(where).
		OrderBy("p.created_at DESC").
		Limit(uint64(filters.Limit)).
		Offset(filters.Offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search properties SQL")
		return nil, 0, fmt.Errorf("failed to build search properties query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing search properties query")
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows, true)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning property row")
			return nil, 0, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, *p)
	}

	return properties, totalItems, rows.Err()
}

// UpdatePropertyFields applies the given column updates to a property.
func (r *PropertyRepository) UpdatePropertyFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	sql, args, err := r.sb.Update("properties").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update property query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("propertyID", id).Msg("Error executing update property query")
		return fmt.Errorf("error updating property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

// TransitionStatus moves a property from one verification status to
// another with a compare-and-swap, so concurrent reviewers cannot both
// verify the same property. Fields verified_by, verified_at and
// verification_notes are recorded on approve/reject.
func (r *PropertyRepository) TransitionStatus(ctx context.Context, id int64, from, to models.PropertyStatus, verifiedBy *int64, notes *string) error {
	update := r.sb.Update("properties").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == models.StatusApproved || to == models.StatusRejected {
		update = update.
			Set("verified_by", verifiedBy).
			Set("verified_at", time.Now()).
			Set("verification_notes", notes)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build transition status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("propertyID", id).Msg("Error executing transition status query")
		return fmt.Errorf("error transitioning property status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the property is gone or its status moved under us.
		if _, getErr := r.GetPropertyByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// AppendImages appends image URLs to the property's ordered images array.
func (r *PropertyRepository) AppendImages(ctx context.Context, id int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tag, err := r.db.Exec(ctx,
		"UPDATE properties SET images = images || $1, updated_at = $2 WHERE id = $3",
		urls, time.Now(), id)
	if err != nil {
		logger.Error().Err(err).Int64("propertyID", id).Msg("Error appending property images")
		return fmt.Errorf("error appending property images: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

// CountByStatus returns property counts grouped by verification status
func (r *PropertyRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

// CountByType returns property counts grouped by property type
func (r *PropertyRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "property_type")
}

func (r *PropertyRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	sql := fmt.Sprintf("SELECT %s, COUNT(*) FROM properties GROUP BY %s", column, column)
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan grouped count row: %w", err)
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// CountAll returns the total number of properties
func (r *PropertyRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// CountDistinctLGAs returns the number of distinct LGAs with at least
// one registered property.
func (r *PropertyRepository) CountDistinctLGAs(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(DISTINCT lga) FROM properties").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct LGAs: %w", err)
	}
	return count, nil
}

// SumSoldPrices returns the total recorded revenue from sold properties
func (r *PropertyRepository) SumSoldPrices(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COALESCE(SUM(sold_price), 0) FROM properties WHERE sold_price IS NOT NULL").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sold prices: %w", err)
	}
	return total, nil
}

// listDocuments loads the documents attached to a property in upload order.
func (r *PropertyRepository) listDocuments(ctx context.Context, propertyID int64) ([]models.PropertyDocument, error) {
	sql, args, err := r.sb.Select("id", "property_id", "document_type", "file_name", "file_url", "uploaded_at").
		From("property_documents").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("uploaded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query property documents: %w", err)
	}
	defer rows.Close()

	var documents []models.PropertyDocument
	for rows.Next() {
		var d models.PropertyDocument
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.DocumentType, &d.FileName, &d.FileURL, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		documents = append(documents, d)
	}

	return documents, rows.Err()
}

// getPendingUpdateRequest loads the property's unresolved update
// request, if any.
func (r *PropertyRepository) getPendingUpdateRequest(ctx context.Context, propertyID int64) (*models.UpdateRequest, error) {
	sql, args, err := r.sb.Select(updateRequestColumns).
		From("property_update_requests").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where("admin_approved IS NULL").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending update request query: %w", err)
	}

	req, err := scanUpdateRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving pending update request: %w", err)
	}

	return req, nil
}

// OwnerStats aggregates one owner's dashboard counters in a single query.
func (r *PropertyRepository) OwnerStats(ctx context.Context, ownerID int64) (total, registeredOnly, listed, sold, revenue int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT is_for_sale AND NOT is_for_lease),
			COUNT(*) FILTER (WHERE is_for_sale OR is_for_lease),
			COUNT(*) FILTER (WHERE availability_status = 'sold'),
			COALESCE(SUM(sold_price) FILTER (WHERE availability_status = 'sold'), 0)
		FROM properties
		WHERE owner_id = $1`, ownerID).
		Scan(&total, &registeredOnly, &listed, &sold, &revenue)
	if err != nil {
		err = fmt.Errorf("failed to aggregate owner stats: %w", err)
	}
	return total, registeredOnly, listed, sold, revenue, err
}
