package repository

import (
	"context"
	"errors"

	"threadnest/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines persistence operations for uploaded images.
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a new ImageRepository implementation.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}
