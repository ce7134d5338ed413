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

// DocumentRepository handles property document database operations
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateDocument stores a document record for a property
func (r *DocumentRepository) CreateDocument(ctx context.Context, d *models.PropertyDocument) (*models.PropertyDocument, error) {
	sql, args, err := r.sb.Insert("property_documents").
		Columns("property_id", "document_type", "file_name", "file_url", "uploaded_at").
		Values(d.PropertyID, d.DocumentType, d.FileName, d.FileURL, time.Now()).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return nil, fmt.Errorf("failed to build create document query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.UploadedAt)
	if err != nil {
		logger.Error().Err(err).Int64("propertyID", d.PropertyID).Msg("Error executing create document query")
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return d, nil
}

// GetDocumentByID retrieves a single document
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*models.PropertyDocument, error) {
	sql, args, err := r.sb.Select("id", "property_id", "document_type", "file_name", "file_url", "uploaded_at").
		From("property_documents").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	var d models.PropertyDocument
	err = r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.PropertyID, &d.DocumentType, &d.FileName, &d.FileURL, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("documentID", id).Msg("Error scanning document row")
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return &d, nil
}

// DeleteDocument removes a document record
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("property_documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete document query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("documentID", id).Msg("Error executing delete document query")
		return fmt.Errorf("error deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}
