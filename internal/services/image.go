package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// ImageService is the blob store boundary: opaque bytes in, id out. No size
// or type validation happens here; upstream collaborators may impose limits.
type ImageService struct {
	store store.Store
}

func NewImageService(st store.Store) *ImageService {
	return &ImageService{store: st}
}

func (s *ImageService) Store(ctx context.Context, upload models.ImageUpload) (*models.Image, error) {
	image := &models.Image{
		ID:        uuid.NewString(),
		Data:      upload.Data,
		MimeType:  upload.MimeType,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Get(ctx context.Context, id string) (*models.Image, error) {
	image, err := s.store.ImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Image not found")
		}
		return nil, err
	}
	return image, nil
}
