package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/vitortoniolo/webapp-showme/internal/apperror"
	"github.com/vitortoniolo/webapp-showme/internal/media/sniffer"
	"github.com/vitortoniolo/webapp-showme/internal/media/svg"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/storage"
)

type UploadInput struct {
	User   models.User
	File   multipart.File
	Header *multipart.FileHeader
}

type UploadResult struct {
	URL       string
	Format    string
	SizeBytes int64
}

// UploadService stores venue and artist images in the object store and
// hands back a public URL for the catalog's image_url fields.
type UploadService struct {
	store *storage.ObjectStore
	log   zerolog.Logger
}

func NewUploadService(store *storage.ObjectStore, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		log:   log,
	}
}

func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if input.File == nil || input.Header == nil {
		return UploadResult{}, apperror.Validation(
			apperror.FieldError{Field: "file", Message: "file is required"},
		)
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, apperror.Validation(
			apperror.FieldError{Field: "file", Message: "file is empty"},
		)
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		if errors.Is(err, sniffer.ErrUnknownType) {
			return UploadResult{}, apperror.Validation(
				apperror.FieldError{Field: "file", Message: "unsupported image format"},
			)
		}
		return UploadResult{}, fmt.Errorf("detect type: %w", err)
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(input.Header.Header))
	if declared != "" && declared != result.MIME {
		return UploadResult{}, apperror.Validation(
			apperror.FieldError{
				Field:   "file",
				Message: fmt.Sprintf("content type mismatch: declared %s, actual %s", declared, result.MIME),
			},
		)
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return UploadResult{}, fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	objectKey := buildObjectKey(string(result.Type))

	_, err = s.store.Client().PutObject(ctx, s.store.Bucket(), objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: result.MIME},
	)
	if err != nil {
		return UploadResult{}, fmt.Errorf("put object: %w", err)
	}

	s.log.Debug().
		Int64("user_id", input.User.ID).
		Str("key", objectKey).
		Int("size", len(data)).
		Msg("media uploaded")

	return UploadResult{
		URL:       s.store.PublicURL(objectKey),
		Format:    string(result.Type),
		SizeBytes: int64(len(data)),
	}, nil
}

func buildObjectKey(ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", ksuid.New().String(), ext))
}
