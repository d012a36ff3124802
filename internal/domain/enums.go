package domain

// FileType represents the allowed document types for upload and extraction.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
}

// ClaimStatus is the normalized claim status vocabulary shown on the dashboard.
type ClaimStatus string

const (
	ClaimStatusSubmitted  ClaimStatus = "submitted"
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusReview     ClaimStatus = "review"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusRejected   ClaimStatus = "rejected"
	ClaimStatusUnknown    ClaimStatus = "unknown"
)

// ClaimStatuses lists every known status in display order.
var ClaimStatuses = []ClaimStatus{
	ClaimStatusSubmitted,
	ClaimStatusPending,
	ClaimStatusProcessing,
	ClaimStatusReview,
	ClaimStatusApproved,
	ClaimStatusRejected,
}

// IsValid reports whether s is a known status.
func (s ClaimStatus) IsValid() bool {
	for _, known := range ClaimStatuses {
		if s == known {
			return true
		}
	}
	return false
}
