package domain

import "errors"

var (
	ErrMissingInput          = errors.New("required input is missing")
	ErrInvalidImageURL       = errors.New("image must be an absolute http(s) URL")
	ErrFetchFailed           = errors.New("image retrieval failed")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed      = errors.New("extraction service failed")
	ErrExtractionRateLimited = errors.New("extraction service is rate limited")
	ErrParseFailed           = errors.New("extraction output is not valid JSON")
	ErrValidationFailed      = errors.New("extracted claim is missing required fields")
	ErrUnparseableField      = errors.New("extracted field could not be normalized")
	ErrInvalidFilter         = errors.New("invalid claim filter")
	ErrNotFound              = errors.New("resource not found")
	ErrDuplicateClaim        = errors.New("claim number already exists for this user")
	ErrDuplicateEmail        = errors.New("user already exists")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrStorage               = errors.New("storage operation failed")
	ErrUploadFailed          = errors.New("file upload to storage failed")
)
