package config

const (
	// MaxUploadSize is the maximum accepted document size in bytes.
	MaxUploadSize = 10 << 20 // 10 MiB

	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxFullNameLength is the maximum length for user full names.
	MaxFullNameLength = 255

	// MaxDescriptionLength is the maximum length for project and
	// document descriptions.
	MaxDescriptionLength = 2000

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

// AllowedFileTypes is the upload MIME allow-list: PDF, Word, Excel,
// plain text, and common image formats.
var AllowedFileTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}
