package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// DocumentRepository defines persistence operations for document
// metadata records. The file bytes themselves live in the blob store.
type DocumentRepository interface {
	// Create inserts a new document metadata record.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByProject retrieves a project's documents, newest first.
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)

	// Delete removes a document metadata record.
	Delete(ctx context.Context, id string) error
}
