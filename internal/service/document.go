package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"projecthub/internal/authz"
	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	svc "projecthub/internal/domain/services"
	"projecthub/internal/storage/filestore"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo     repositories.DocumentRepository
	projectRepo repositories.ProjectRepository
	store       *filestore.FileStore
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	store *filestore.FileStore,
	logger *slog.Logger,
) svc.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		store:       store,
		logger:      logger,
	}
}

// Upload stores the file bytes then writes the metadata record. If the
// metadata write fails the stored blob is removed so no orphan remains.
func (s *documentService) Upload(ctx context.Context, principal authz.Principal, projectID string, req *svc.UploadDocumentRequest) (*models.Document, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionDocumentUpload,
		authz.Resource{Project: project.Ref()},
		"not authorized to upload documents to this project"); err != nil {
		return nil, err
	}

	if err := validateUpload(req); err != nil {
		return nil, err
	}

	result, err := s.store.Save(io.LimitReader(req.Reader, config.MaxUploadSize), req.FileName)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc := &models.Document{
		ProjectID:   projectID,
		FileName:    req.FileName,
		FileType:    req.ContentType,
		FileSize:    result.Size,
		StoragePath: result.StoragePath,
		Description: strings.TrimSpace(req.Description),
		UploadedBy:  principal.ID,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(result.StoragePath); delErr != nil {
			s.logger.Error("orphaned blob after failed metadata write",
				"storage_path", result.StoragePath, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("document uploaded",
		"document_id", doc.ID,
		"project_id", projectID,
		"file_name", doc.FileName,
		"file_size", doc.FileSize,
		"uploaded_by", principal.ID,
	)

	return s.docRepo.GetByID(ctx, doc.ID)
}

// ListByProject retrieves a project's documents, newest first
func (s *documentService) ListByProject(ctx context.Context, principal authz.Principal, projectID string) ([]models.Document, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionDocumentRead,
		authz.Resource{Project: project.Ref()},
		"not authorized to view this project's documents"); err != nil {
		return nil, err
	}

	return s.docRepo.ListByProject(ctx, projectID)
}

// Get retrieves a document's metadata
func (s *documentService) Get(ctx context.Context, principal authz.Principal, id string) (*models.Document, error) {
	doc, project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionDocumentRead,
		authz.Resource{Project: project.Ref(), Document: doc.Ref()},
		"not authorized to view this document"); err != nil {
		return nil, err
	}

	return doc, nil
}

// Download opens the document's blob for streaming
func (s *documentService) Download(ctx context.Context, principal authz.Principal, id string) (*models.Document, io.ReadCloser, error) {
	doc, project, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := authorize(principal, authz.ActionDocumentRead,
		authz.Resource{Project: project.Ref(), Document: doc.Ref()},
		"not authorized to download this document"); err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Open(doc.StoragePath)
	if err != nil {
		// Metadata without a blob is a defect, not a user error.
		return nil, nil, &domain.IntegrityError{Message: fmt.Sprintf("document %s: blob missing from store", doc.ID)}
	}

	return doc, reader, nil
}

// Delete removes the metadata record and the stored blob
func (s *documentService) Delete(ctx context.Context, principal authz.Principal, id string) error {
	doc, _, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(principal, authz.ActionDocumentDelete,
		authz.Resource{Document: doc.Ref()},
		"not authorized to delete this document"); err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(doc.StoragePath); err != nil {
		// The record is gone; a leaked blob is logged, not surfaced.
		s.logger.Error("failed to delete blob",
			"document_id", id, "storage_path", doc.StoragePath, "error", err)
	}

	s.logger.Info("document deleted",
		"document_id", id,
		"project_id", doc.ProjectID,
		"deleted_by", principal.ID,
	)

	return nil
}

// load fetches a document together with its owning project.
func (s *documentService) load(ctx context.Context, id string) (*models.Document, *models.Project, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projectRepo.GetByID(ctx, doc.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return doc, project, nil
}

// validateUpload enforces the size cap and the MIME allow-list.
func validateUpload(req *svc.UploadDocumentRequest) error {
	if req.FileName == "" {
		return &domain.ValidationError{Message: "file name is required"}
	}
	if req.Size <= 0 {
		return &domain.ValidationError{Message: "file is empty"}
	}
	if req.Size > config.MaxUploadSize {
		return &domain.ValidationError{Message: fmt.Sprintf("file exceeds the %d MB limit", config.MaxUploadSize>>20)}
	}
	if !config.AllowedFileTypes[req.ContentType] {
		return &domain.ValidationError{Message: fmt.Sprintf("file type %q is not allowed", req.ContentType)}
	}
	if len(req.Description) > config.MaxDescriptionLength {
		return &domain.ValidationError{Message: "description is too long"}
	}
	return nil
}
