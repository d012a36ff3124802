package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartclaim/internal/service"
)

// DocumentHandler handles invoice image uploads.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /:userId/documents
// @Summary Upload an invoice image
// @Description Store a PDF, JPG, PNG or WEBP file and return the URL to submit with add-claim.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param userId path string true "User ID"
// @Param file formData file true "Invoice file"
// @Success 201 {object} DocumentResponse "File stored"
// @Failure 400 {object} ErrorBody "Missing file or unsupported type"
// @Failure 404 {object} ErrorBody "User not found"
// @Failure 413 {object} ErrorBody "File too large"
// @Failure 500 {object} ErrorBody "Upload failed"
// @Router /{userId}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.documentService.Upload(c.Request.Context(), service.DocumentUploadInput{
		UserID: userID,
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DocumentResponse{
		URL:         doc.URL,
		Key:         doc.Key,
		ContentType: doc.ContentType,
		Size:        doc.Size,
	})
}
