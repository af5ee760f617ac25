// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"threadnest/internal/models"
)

// ImageRepoStub is an in-memory image repository implementation for tests.
type ImageRepoStub struct {
	items  map[uint]*models.Image
	nextID uint
}

// NewImageRepoStub creates an in-memory image repository stub for tests.
func NewImageRepoStub() *ImageRepoStub {
	return &ImageRepoStub{items: make(map[uint]*models.Image), nextID: 1}
}

// Create stores image metadata in-memory.
func (s *ImageRepoStub) Create(_ context.Context, img *models.Image) error {
	if img.ID == 0 {
		img.ID = s.nextID
		s.nextID++
	}
	img.CreatedAt = time.Now().UTC()
	s.items[img.ID] = img
	return nil
}

// GetByID fetches an image by id.
func (s *ImageRepoStub) GetByID(_ context.Context, id uint) (*models.Image, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, models.NewNotFoundError("Image", id)
	}
	return item, nil
}

// Count reports how many images the stub holds.
func (s *ImageRepoStub) Count() int {
	return len(s.items)
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
