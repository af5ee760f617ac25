package models

import (
	"time"
)

// FavoriteThread records a user's favorite on a thread.
// The combination of UserID and ThreadID must be unique.
type FavoriteThread struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	ThreadID  uint      `gorm:"not null;uniqueIndex:idx_favorite_pair;index" json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FavoriteThread) TableName() string {
	return "user_favorite_threads"
}

// WatchedThread records that a user saved a thread. Watched threads are also
// excluded from the user's random feed.
type WatchedThread struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watched_pair" json:"user_id"`
	ThreadID  uint      `gorm:"not null;uniqueIndex:idx_watched_pair;index" json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (WatchedThread) TableName() string {
	return "user_watched_threads"
}
