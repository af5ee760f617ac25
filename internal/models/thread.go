package models

import (
	"time"
)

// ThreadType discriminates posts, comments and replies, which share one table.
type ThreadType string

const (
	// ThreadTypePost is a top-level feed post.
	ThreadTypePost ThreadType = "post"
	// ThreadTypeComment is a direct comment on a post.
	ThreadTypeComment ThreadType = "comment"
	// ThreadTypeReply is a reply to a comment.
	ThreadTypeReply ThreadType = "reply"
)

// Valid reports whether t is one of the known thread types.
func (t ThreadType) Valid() bool {
	switch t {
	case ThreadTypePost, ThreadTypeComment, ThreadTypeReply:
		return true
	}
	return false
}

// Thread is a post, comment or reply. Threads are hard-deleted; dependent
// rows (image links, reply edges, favorites, watches) are cleaned up in the
// same transaction by the repository.
type Thread struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Type      ThreadType `gorm:"type:varchar(10);not null;index" json:"type"`
	Text      string     `gorm:"type:text" json:"text"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Images    []Image    `gorm:"many2many:thread_images" json:"images,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ThreadReply records that one thread is a reply/comment on another.
// A reply has exactly one main; a main may have many replies.
type ThreadReply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MainID    uint      `gorm:"not null;uniqueIndex:idx_thread_reply_edge" json:"main_id"`
	ReplyID   uint      `gorm:"not null;uniqueIndex:idx_thread_reply_edge" json:"reply_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ThreadReply) TableName() string {
	return "thread_replies"
}
