package postgres

import (
	"context"
	"fmt"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new document metadata record
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, file_name, file_type, file_size, storage_path, description, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ProjectID,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.StoragePath,
		doc.Description,
		doc.UploadedBy,
	).Scan(&doc.ID, &doc.UploadedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: "project not found"}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID with its uploader summary
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.project_id, d.file_name, d.file_type, d.file_size,
		       d.storage_path, d.description, d.uploaded_by, d.uploaded_at,
		       u.full_name, u.email, u.role
		FROM %s d
		JOIN %s u ON u.id = d.uploaded_by
		WHERE d.id = $1
	`, r.tables.Documents, r.tables.Users)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.FileName,
		&doc.FileType,
		&doc.FileSize,
		&doc.StoragePath,
		&doc.Description,
		&doc.UploadedBy,
		&doc.UploadedAt,
		&doc.Uploader.FullName,
		&doc.Uploader.Email,
		&doc.Uploader.Role,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	doc.Uploader.ID = doc.UploadedBy

	return &doc, nil
}

// ListByProject retrieves a project's documents, newest first
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.project_id, d.file_name, d.file_type, d.file_size,
		       d.storage_path, d.description, d.uploaded_by, d.uploaded_at,
		       u.full_name, u.email, u.role
		FROM %s d
		JOIN %s u ON u.id = d.uploaded_by
		WHERE d.project_id = $1
		ORDER BY d.uploaded_at DESC
	`, r.tables.Documents, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&doc.FileName,
			&doc.FileType,
			&doc.FileSize,
			&doc.StoragePath,
			&doc.Description,
			&doc.UploadedBy,
			&doc.UploadedAt,
			&doc.Uploader.FullName,
			&doc.Uploader.Email,
			&doc.Uploader.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.Uploader.ID = doc.UploadedBy
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if docs == nil {
		docs = []models.Document{}
	}

	return docs, nil
}

// Delete removes a document metadata record
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "document not found"}
	}

	return nil
}
