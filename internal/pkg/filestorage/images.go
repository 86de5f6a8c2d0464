package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tadreeb/academy/internal/pkg/apperrors"
)

// MaxImageSize is the largest accepted image upload
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// DetectImage checks size and sniffs the content type of an uploaded image.
// It returns the canonical file extension for the detected type.
func DetectImage(fileHeader *multipart.FileHeader) (contentType, ext string, err error) {
	if fileHeader == nil {
		return "", "", apperrors.ErrBadRequest
	}
	if fileHeader.Size > MaxImageSize {
		return "", "", fmt.Errorf("%w: %d bytes", apperrors.ErrFileTooLarge, fileHeader.Size)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	contentType = http.DetectContentType(head[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFileType, contentType)
	}
	return contentType, ext, nil
}
