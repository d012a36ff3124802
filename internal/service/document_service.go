package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

const defaultPresignExpirySecs = 7 * 24 * 3600

// DocumentUploadInput is the DTO for invoice image uploads.
type DocumentUploadInput struct {
	UserID uuid.UUID
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadedDocument describes a stored invoice image. URL is what clients pass
// to add-claim as the image reference.
type UploadedDocument struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// DocumentService stores invoice images and hands out fetchable URLs.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*UploadedDocument, error)
}

type documentService struct {
	userRepo port.UserRepository
	storage  port.ObjectStorage
	cfg      *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(userRepo port.UserRepository, storage port.ObjectStorage, cfg *config.S3Config) DocumentService {
	return &documentService{userRepo: userRepo, storage: storage, cfg: cfg}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*UploadedDocument, error) {
	if input.File == nil || input.Header == nil {
		return nil, domain.ErrMissingInput
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic bytes must agree with an allowed type, whatever the extension says.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, valid := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	exists, err := s.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	contentType := domain.AllowedFileTypes[fileType]
	key := fmt.Sprintf("users/%s/documents/%s.%s", input.UserID, uuid.New(), ext)

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for user %s",
		input.Header.Filename, contentType, input.Header.Size, input.UserID)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("documentService.Upload: S3 upload failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	url, err := s.documentURL(ctx, key)
	if err != nil {
		log.Printf("documentService.Upload: failed to build URL for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	return &UploadedDocument{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        input.Header.Size,
	}, nil
}

func (s *documentService) documentURL(ctx context.Context, key string) (string, error) {
	if base := strings.TrimRight(s.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + key, nil
	}
	expiry := s.cfg.PresignExpiry
	if expiry <= 0 {
		expiry = defaultPresignExpirySecs
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, expiry)
}
