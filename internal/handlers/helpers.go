package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
)

// respondError maps error kinds to HTTP statuses. Internal details are never
// surfaced to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

// formUpload reads the named multipart file if present, returning nil for
// requests without one (including non-multipart requests).
func formUpload(c *gin.Context, field string) (*models.ImageUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(header)
}

func readUpload(header *multipart.FileHeader) (*models.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &models.ImageUpload{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}
