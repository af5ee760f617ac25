package repository

import (
	"context"
	"errors"

	"threadnest/internal/cache"
	"threadnest/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Toggle(ctx context.Context, currentID, targetID uint) (bool, error)
	IsFollowing(ctx context.Context, currentID, targetID uint) (bool, error)
	FollowerCount(ctx context.Context, targetID uint) (int64, error)
	Followers(ctx context.Context, userID uint) ([]models.Follow, error)
	Following(ctx context.Context, userID uint) ([]models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle flips the follow edge between current and target inside a
// transaction: an existing edge is removed, an absent one is created.
// Returns whether current follows target after the call.
func (r *followRepository) Toggle(ctx context.Context, currentID, targetID uint) (bool, error) {
	var nowFollowing bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge models.Follow
		err := tx.Where("current_id = ? AND target_id = ?", currentID, targetID).First(&edge).Error
		switch {
		case err == nil:
			if err := tx.Delete(&edge).Error; err != nil {
				return models.NewInternalError(err)
			}
			nowFollowing = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Follow{CurrentID: currentID, TargetID: targetID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			nowFollowing = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	cache.Invalidate(ctx, cache.FollowerCountKey(targetID))
	return nowFollowing, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, currentID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("current_id = ? AND target_id = ?", currentID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowerCount(ctx context.Context, targetID uint) (int64, error) {
	var count int64
	key := cache.FollowerCountKey(targetID)

	err := cache.Aside(ctx, key, &count, cache.FollowerCountTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Follow{}).
			Where("target_id = ?", targetID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Followers returns the edges pointing at userID, newest first, with the
// follower user preloaded.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.Follow, error) {
	var edges []models.Follow
	if err := r.db.WithContext(ctx).
		Where("target_id = ?", userID).
		Preload("Current").
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

// Following returns the edges originating from userID, newest first, with the
// followed user preloaded.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.Follow, error) {
	var edges []models.Follow
	if err := r.db.WithContext(ctx).
		Where("current_id = ?", userID).
		Preload("Target").
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
