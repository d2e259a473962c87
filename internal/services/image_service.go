package services

import (
	"bytes"
	"fmt"

	"wardrobe/internal/imageproc"
	"wardrobe/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessedImage is a background-free PNG ready to be returned to the client.
type ProcessedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageService wraps the background removal pipeline.
type ImageService struct {
	log *zap.Logger
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{log: logger.Named("images")}
}

// RemoveBackground cuts the subject out of an uploaded image. Errors wrap
// imageproc.ErrDecode or imageproc.ErrNoForeground when the input is at fault.
func (s *ImageService) RemoveBackground(data []byte) (*ProcessedImage, error) {
	out, err := imageproc.RemoveBackground(bytes.NewReader(data))
	if err != nil {
		s.log.Warn("background removal failed", zap.Int("bytes", len(data)), zap.Error(err))
		return nil, fmt.Errorf("failed to remove background: %w", err)
	}

	return &ProcessedImage{
		Filename:    uuid.New().String() + ".png",
		ContentType: "image/png",
		Data:        out,
	}, nil
}
