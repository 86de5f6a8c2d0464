package filestorage

import "mime/multipart"

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveImage validates an image upload and stores it under path,
	// returning its public URL
	SaveImage(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file by its public path
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
