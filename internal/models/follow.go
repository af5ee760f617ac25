package models

import (
	"time"
)

// Follow records that one user follows another.
// The (current, target) pair is unique.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CurrentID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"current_id"`
	TargetID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Current User `gorm:"foreignKey:CurrentID" json:"current,omitempty"`
	Target  User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}
