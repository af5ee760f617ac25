package repository

import (
	"context"
	"errors"

	"threadnest/internal/cache"
	"threadnest/internal/models"

	"gorm.io/gorm"
)

// ThreadRepository defines persistence operations for threads and their
// engagement edges (favorites, watches, reply links).
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	UpdateContent(ctx context.Context, id uint, text string, threadType models.ThreadType) error
	Delete(ctx context.Context, id uint) error
	ImageURLs(ctx context.Context, threadID uint) ([]string, error)
	FavoriteCount(ctx context.Context, threadID uint) (int64, error)
	IsFavorited(ctx context.Context, userID, threadID uint) (bool, error)
	ReplyCount(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error)
	ReplyIDs(ctx context.Context, mainID uint) ([]uint, error)
	RandomUnseenIDs(ctx context.Context, viewerID uint, limit int) ([]uint, error)
	SetFavorite(ctx context.Context, userID, threadID uint, favorited bool) error
	ToggleWatch(ctx context.Context, userID, threadID uint) (bool, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository returns a new ThreadRepository implementation.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// Create inserts the thread row, one image row plus link per URL, and the
// reply edge when mainID is set, all in one transaction. A missing main
// thread fails the whole insert with NotFound.
func (r *threadRepository) Create(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mainID != nil {
			var count int64
			if err := tx.Model(&models.Thread{}).Where("id = ?", *mainID).Count(&count).Error; err != nil {
				return models.NewInternalError(err)
			}
			if count == 0 {
				return models.NewNotFoundError("Thread", *mainID)
			}
		}

		for _, url := range imageURLs {
			thread.Images = append(thread.Images, models.Image{URL: url})
		}
		if err := tx.Create(thread).Error; err != nil {
			return models.NewInternalError(err)
		}

		if mainID != nil {
			edge := models.ThreadReply{MainID: *mainID, ReplyID: thread.ID}
			if err := tx.Create(&edge).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})
}

func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	key := cache.ThreadKey(id)

	err := cache.Aside(ctx, key, &thread, cache.ThreadTTL, func() error {
		if err := r.db.WithContext(ctx).First(&thread, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Thread", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) UpdateContent(ctx context.Context, id uint, text string, threadType models.ThreadType) error {
	res := r.db.WithContext(ctx).Model(&models.Thread{}).Where("id = ?", id).Updates(map[string]interface{}{
		"text": text,
		"type": threadType,
	})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Thread", id)
	}
	cache.InvalidateThread(ctx, id)
	return nil
}

// Delete hard-deletes the thread and cascades over its dependent rows
// (image links, reply edges in both directions, favorites, watches) in one
// transaction.
func (r *threadRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM thread_images WHERE thread_id = ?", id).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("main_id = ? OR reply_id = ?", id, id).Delete(&models.ThreadReply{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("thread_id = ?", id).Delete(&models.FavoriteThread{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("thread_id = ?", id).Delete(&models.WatchedThread{}).Error; err != nil {
			return models.NewInternalError(err)
		}

		res := tx.Delete(&models.Thread{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Thread", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateThread(ctx, id)
	return nil
}

func (r *threadRepository) ImageURLs(ctx context.Context, threadID uint) ([]string, error) {
	var urls []string
	if err := r.db.WithContext(ctx).
		Table("images").
		Joins("JOIN thread_images ti ON ti.image_id = images.id").
		Where("ti.thread_id = ?", threadID).
		Order("images.id ASC").
		Pluck("images.url", &urls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return urls, nil
}

func (r *threadRepository) FavoriteCount(ctx context.Context, threadID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FavoriteThread{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *threadRepository) IsFavorited(ctx context.Context, userID, threadID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FavoriteThread{}).
		Where("user_id = ? AND thread_id = ?", userID, threadID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ReplyCount counts children of mainID whose own type matches kind.
func (r *threadRepository) ReplyCount(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("thread_replies tr").
		Joins("JOIN threads t ON t.id = tr.reply_id").
		Where("tr.main_id = ? AND t.type = ?", mainID, kind).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *threadRepository) ReplyIDs(ctx context.Context, mainID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.ThreadReply{}).
		Where("main_id = ?", mainID).
		Order("reply_id ASC").
		Pluck("reply_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// RandomUnseenIDs picks up to limit post ids the viewer has not watched yet,
// in random order.
func (r *threadRepository) RandomUnseenIDs(ctx context.Context, viewerID uint, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 15
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Thread{}).
		Where("type = ?", models.ThreadTypePost).
		Where("id NOT IN (?)", r.db.Model(&models.WatchedThread{}).
			Select("thread_id").
			Where("user_id = ?", viewerID)).
		Order("RANDOM()").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// SetFavorite applies the caller's explicit desired state: true inserts the
// edge (a no-op when it already exists), false removes it.
func (r *threadRepository) SetFavorite(ctx context.Context, userID, threadID uint, favorited bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !favorited {
			if err := tx.Where("user_id = ? AND thread_id = ?", userID, threadID).
				Delete(&models.FavoriteThread{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			return nil
		}

		var count int64
		if err := tx.Model(&models.FavoriteThread{}).
			Where("user_id = ? AND thread_id = ?", userID, threadID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&models.FavoriteThread{UserID: userID, ThreadID: threadID}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// ToggleWatch flips the watched edge inside a transaction and returns whether
// the thread is watched after the call.
func (r *threadRepository) ToggleWatch(ctx context.Context, userID, threadID uint) (bool, error) {
	var nowWatched bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge models.WatchedThread
		err := tx.Where("user_id = ? AND thread_id = ?", userID, threadID).First(&edge).Error
		switch {
		case err == nil:
			if err := tx.Delete(&edge).Error; err != nil {
				return models.NewInternalError(err)
			}
			nowWatched = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.WatchedThread{UserID: userID, ThreadID: threadID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			nowWatched = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	return nowWatched, nil
}
