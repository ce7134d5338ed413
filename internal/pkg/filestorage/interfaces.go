package filestorage

import (
	"mime/multipart"
)

// Subdirectories used for property uploads.
const (
	SubPathDocuments = "documents"
	SubPathImages    = "images"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file into the storage root and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file into the given subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file; deleting a missing file is not an error
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a stored file URL
	GetFullPath(fileURL string) string
}
