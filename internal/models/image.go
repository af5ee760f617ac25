package models

import (
	"time"
)

// Image is an uploaded file referenced by user avatars and thread attachments.
// Width, height and mime type are recorded when the upload is decoded.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}
