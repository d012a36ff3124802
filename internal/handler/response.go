package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartclaim/internal/domain"
	"smartclaim/internal/middleware"
)

// ErrorBody is the error envelope for claim, document and stats endpoints.
type ErrorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// MessageBody is the envelope used by the auth endpoints.
type MessageBody struct {
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorBody{Error: msg, Code: code, Retryable: isRetryableStatus(status)})
}

// isRetryableStatus reports whether the client may retry the same request.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests ||
		status == http.StatusBadGateway ||
		status == http.StatusServiceUnavailable
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest, "MISSING_INPUT", "required input is missing"
	case errors.Is(err, domain.ErrInvalidImageURL):
		return http.StatusBadRequest, "INVALID_IMAGE_URL", "image must be an absolute http(s) URL"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway, "FETCH_FAILED", "image retrieval failed"
	case errors.Is(err, domain.ErrExtractionRateLimited):
		return http.StatusTooManyRequests, "EXTRACTION_RATE_LIMITED", "extraction service is busy; retry later"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, "EXTRACTION_FAILED", "extraction service failed"
	case errors.Is(err, domain.ErrParseFailed):
		return http.StatusBadGateway, "PARSE_FAILED", "extraction output could not be parsed"
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", "claim number is missing from the document"
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest, "INVALID_STATUS", "status must be one of: " + allowedStatuses()
	case errors.Is(err, domain.ErrUnparseableField):
		return http.StatusUnprocessableEntity, "UNPARSEABLE_FIELD", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateClaim):
		return http.StatusConflict, "DUPLICATE_CLAIM", "claim number already exists for this user"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "DUPLICATE_EMAIL", "User already exists"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

func allowedStatuses() string {
	names := make([]string, 0, len(domain.ClaimStatuses)+1)
	for _, s := range domain.ClaimStatuses {
		names = append(names, string(s))
	}
	names = append(names, string(domain.ClaimStatusUnknown))
	return strings.Join(names, ", ")
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	logInternal(c, status, err)
	RespondError(c, status, code, msg)
}

// HandleMessageError maps a domain error and sends it in the {message} envelope.
func HandleMessageError(c *gin.Context, err error) {
	status, _, msg := MapDomainError(err)
	logInternal(c, status, err)
	if status >= 500 {
		msg = "Server Error"
	}
	c.JSON(status, MessageBody{Message: msg})
}

func logInternal(c *gin.Context, status int, err error) {
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
}

// userIDParam parses the :userId path segment. An id that is not a UUID cannot
// name a user, so it is reported as not found. When the request carries a
// session, the path must name the session's user.
func userIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "user not found")
		return uuid.Nil, false
	}
	if sessionID, err := middleware.GetUserID(c); err == nil && sessionID != id {
		RespondError(c, http.StatusForbidden, "FORBIDDEN", "token does not belong to this user")
		return uuid.Nil, false
	}
	return id, true
}
