package models

import (
	"time"

	"projecthub/internal/authz"
)

// Document is an uploaded file's metadata record. It always belongs to
// exactly one project. StoragePath is an opaque handle into the blob
// store and is never serialized.
type Document struct {
	ID          string      `json:"id" db:"id"`
	ProjectID   string      `json:"project_id" db:"project_id"`
	FileName    string      `json:"file_name" db:"file_name"`
	FileType    string      `json:"file_type" db:"file_type"`
	FileSize    int64       `json:"file_size" db:"file_size"`
	StoragePath string      `json:"-" db:"storage_path"`
	Description string      `json:"description" db:"description"`
	UploadedBy  string      `json:"uploaded_by" db:"uploaded_by"`
	Uploader    UserSummary `json:"uploader"`
	UploadedAt  time.Time   `json:"uploaded_at" db:"uploaded_at"`
}

// Ref returns the authorization snapshot of the document.
func (d *Document) Ref() *authz.DocumentRef {
	return &authz.DocumentRef{UploadedBy: d.UploadedBy}
}
