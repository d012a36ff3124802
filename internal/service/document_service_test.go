package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
	"smartclaim/internal/port"
	"smartclaim/internal/service"
	"smartclaim/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 10,
		PresignExpiry: 3600,
	}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	_ = writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

// pngContent returns minimal valid PNG bytes (magic bytes).
func pngContent() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

func TestDocumentService_Upload_PresignedURL(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDocumentService(userRepo, storage, &cfg)
	userID := uuid.New()

	file, header := createMultipartFile("invoice.png", pngContent(), "image/png")
	defer file.Close()

	userRepo.On("Exists", mock.Anything, userID).Return(true, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == "image/png" &&
			strings.HasPrefix(in.Key, "users/"+userID.String()+"/documents/") && strings.HasSuffix(in.Key, ".png")
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), int64(3600)).
		Return("https://signed.example.com/x", nil)

	doc, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: userID, File: file, Header: header})

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/x", doc.URL)
	assert.Equal(t, "image/png", doc.ContentType)
	storage.AssertExpectations(t)
}

func TestDocumentService_Upload_PublicBaseURL(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	cfg.PublicBaseURL = "https://cdn.example.com/"
	svc := service.NewDocumentService(userRepo, storage, &cfg)
	userID := uuid.New()

	file, header := createMultipartFile("invoice.png", pngContent(), "image/png")
	defer file.Close()

	userRepo.On("Exists", mock.Anything, userID).Return(true, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)

	doc, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: userID, File: file, Header: header})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+doc.Key, doc.URL)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  error
	}{
		{"unknown extension", "invoice.exe", pngContent(), domain.ErrUnsupportedFileType},
		{"extension lies about content", "invoice.png", []byte("plain text, not an image at all"), domain.ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.MockUserRepo)
			storage := new(mocks.MockObjectStorage)
			cfg := testS3Config()
			svc := service.NewDocumentService(userRepo, storage, &cfg)

			file, header := createMultipartFile(tt.filename, tt.content, "application/octet-stream")
			defer file.Close()

			_, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: uuid.New(), File: file, Header: header})

			assert.ErrorIs(t, err, tt.wantErr)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestDocumentService_Upload_TooLarge(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDocumentService(userRepo, storage, &cfg)

	file, header := createMultipartFile("invoice.png", pngContent(), "image/png")
	defer file.Close()
	header.Size = 11 * 1024 * 1024

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: uuid.New(), File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestDocumentService_Upload_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDocumentService(userRepo, storage, &cfg)
	userID := uuid.New()

	file, header := createMultipartFile("invoice.png", pngContent(), "image/png")
	defer file.Close()
	userRepo.On("Exists", mock.Anything, userID).Return(false, nil)

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: userID, File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentService_Upload_StorageFailure(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDocumentService(userRepo, storage, &cfg)
	userID := uuid.New()

	file, header := createMultipartFile("invoice.png", pngContent(), "image/png")
	defer file.Close()
	userRepo.On("Exists", mock.Anything, userID).Return(true, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 unavailable"))

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{UserID: userID, File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
