package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// UserService handles registration and profile updates. Username uniqueness
// is enforced at write time; there are no credentials in this system.
type UserService struct {
	store  store.Store
	images *ImageService
	log    *zap.Logger
}

func NewUserService(st store.Store, images *ImageService, log *zap.Logger) *UserService {
	return &UserService{store: st, images: images, log: log}
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest, upload *models.ImageUpload) (*models.User, error) {
	if _, err := s.store.UserByUsername(ctx, req.Username); err == nil {
		return nil, apperr.Conflict("Username already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		CreatedAt: time.Now().UTC(),
	}
	if upload != nil {
		image, err := s.images.Store(ctx, *upload)
		if err != nil {
			return nil, err
		}
		user.ProfileImageID = &image.ID
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest, upload *models.ImageUpload) (*models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	if req.Username != "" {
		existing, err := s.store.UserByUsername(ctx, req.Username)
		if err == nil && existing.ID != id {
			return nil, apperr.Conflict("Username already exists")
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		user.Username = req.Username
	}
	if upload != nil {
		image, err := s.images.Store(ctx, *upload)
		if err != nil {
			return nil, err
		}
		user.ProfileImageID = &image.ID
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login is a bare username lookup; authentication is out of scope.
func (s *UserService) Login(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get returns the user hydrated with the lists they belong to.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	lists, err := s.store.ListsForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Lists = lists
	return user, nil
}
