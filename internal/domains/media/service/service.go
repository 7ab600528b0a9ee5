package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"tourly/config"
	"tourly/infras/otel"
	"tourly/infras/s3"
	"tourly/shared/constant"
	"tourly/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	imageDirectory = "tours"
)

type Media interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url string, err error)
	DeleteImage(ctx context.Context, url string) error
}

type serviceImpl struct {
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

func New(s3 s3.S3, cfg *config.Config, otel otel.Otel) Media {
	return &serviceImpl{
		s3:   s3,
		cfg:  cfg,
		otel: otel,
	}
}

// UploadImage stores a tour image and returns the public URL that tour
// create/update persists.
func (s *serviceImpl) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType := header.Header.Get(constant.RequestHeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return constant.Empty, failure.BadRequestFromString("file must be an image") // nolint:wrapcheck
	}

	filename := uuid.NewString()

	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	bucketName := s.cfg.Storage.S3.BucketName

	url, err = s.s3.UploadFile(ctx, bucketName, imageDirectory, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.Storage.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, url)
	if objectName == constant.Empty {
		return failure.BadRequestFromString("url does not belong to the media storage") // nolint:wrapcheck
	}

	if err = s.s3.DeleteFile(ctx, bucketName, "", objectName); err != nil {
		log.Error().Err(err).Msg("failed to delete image from S3")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
