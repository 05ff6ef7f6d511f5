package services

import (
	"context"
	"fmt"
	"io"

	"rento/errors"
	"rento/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "properties"

// MediaService uploads property and ticket images to Cloudinary
type MediaService struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

// NewMediaService accepts a nil client, in which case uploads are disabled
func NewMediaService(cld *cloudinary.Cloudinary, log logger.Logger) *MediaService {
	return &MediaService{cld: cld, logger: log}
}

func (s *MediaService) Enabled() bool {
	return s.cld != nil
}

// Upload stores the file and returns its secure URL
func (s *MediaService) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if s.cld == nil {
		return "", errors.ErrUploadDisabled
	}
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: uploadFolder})
	if err != nil {
		s.logger.Error("upload %s: %v", filename, err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload image: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
