package services

import (
	"context"
	"io"

	"projecthub/internal/authz"
	"projecthub/internal/domain/models"
)

// UploadDocumentRequest carries one file upload. Reader streams the file
// bytes; Size is taken from the multipart part.
type UploadDocumentRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Description string
	Reader      io.Reader
}

// DocumentService defines business logic for project-scoped documents.
type DocumentService interface {
	// Upload stores the file in the blob store and writes the metadata
	// record. If the metadata write fails the stored blob is removed.
	Upload(ctx context.Context, principal authz.Principal, projectID string, req *UploadDocumentRequest) (*models.Document, error)

	// ListByProject retrieves a project's documents, newest first.
	ListByProject(ctx context.Context, principal authz.Principal, projectID string) ([]models.Document, error)

	// Get retrieves a document's metadata.
	Get(ctx context.Context, principal authz.Principal, id string) (*models.Document, error)

	// Download opens the document's blob for streaming. The caller must
	// close the reader.
	Download(ctx context.Context, principal authz.Principal, id string) (*models.Document, io.ReadCloser, error)

	// Delete removes the blob and the metadata record together.
	Delete(ctx context.Context, principal authz.Principal, id string) error
}
