package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"threadnest/internal/models"
	"threadnest/internal/observability"
	"threadnest/internal/repository"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	MaxUploadFiles      = 10
	MaxUploadSizeBytes  = 10 * 1024 * 1024
	UploadWebPQuality   = 80
	uploadURLPathPrefix = "/public/images"
)

// UploadService stores image uploads on disk as WebP and records one image
// row per stored file.
type UploadService struct {
	imageRepo repository.ImageRepository
	uploadDir string
	baseURL   string
}

func NewUploadService(imageRepo repository.ImageRepository, uploadDir, publicBaseURL string) *UploadService {
	return &UploadService{
		imageRepo: imageRepo,
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
	}
}

// SaveImages validates, re-encodes and stores up to MaxUploadFiles images,
// returning the persisted rows in input order. The batch is all-or-nothing
// at the validation level: one bad file rejects the whole request before
// anything is written.
func (s *UploadService) SaveImages(ctx context.Context, files []*multipart.FileHeader) ([]*models.Image, error) {
	if len(files) == 0 {
		return nil, models.NewValidationError("No files uploaded")
	}
	if len(files) > MaxUploadFiles {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("Too many files (max %d)", MaxUploadFiles))
	}

	decoded := make([]image.Image, len(files))
	for i, fh := range files {
		img, err := s.decodeUpload(fh)
		if err != nil {
			observability.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
		decoded[i] = img
	}

	images := make([]*models.Image, 0, len(files))
	for _, img := range decoded {
		record, err := s.storeImage(ctx, img)
		if err != nil {
			observability.UploadsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		images = append(images, record)
	}

	observability.UploadsTotal.WithLabelValues("ok").Inc()
	return images, nil
}

func (s *UploadService) decodeUpload(fh *multipart.FileHeader) (image.Image, error) {
	if fh.Size > MaxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxUploadSizeBytes+1))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(content) > MaxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	return img, nil
}

func (s *UploadService) storeImage(ctx context.Context, img image.Image) (*models.Image, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: UploadWebPQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}

	filename := uuid.New().String() + ".webp"
	path := filepath.Join(s.uploadDir, filename)
	if err := writeBytesToFile(path, buf.Bytes()); err != nil {
		return nil, models.NewInternalError(err)
	}

	bounds := img.Bounds()
	record := &models.Image{
		URL:      fmt.Sprintf("%s%s/%s", s.baseURL, uploadURLPathPrefix, filename),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: "image/webp",
	}
	if err := s.imageRepo.Create(ctx, record); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return record, nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
