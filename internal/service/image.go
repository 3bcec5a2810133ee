package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/config"
)

// ImageService uploads pet photos to object storage. Uploads happen before
// the pet row is created: the admin flow needs the public URL to store on the
// listing.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadPetImage stores the image under a fresh pets/<uuid>.<ext> key and
// returns its stable public URL.
func (s *ImageService) UploadPetImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image upload")
	}

	key := fmt.Sprintf("pets/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to object storage: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.s3Config.PublicBaseURL, "/"), key)
	log.Printf("[ImageService] Successfully uploaded pet image: %s", publicURL)

	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
