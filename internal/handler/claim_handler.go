package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smartclaim/internal/domain"
	"smartclaim/internal/export"
	"smartclaim/internal/service"
)

// ClaimHandler handles claim submission and retrieval endpoints.
type ClaimHandler struct {
	extractionService service.ExtractionService
	claimService      service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(extractionService service.ExtractionService, claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{extractionService: extractionService, claimService: claimService}
}

// AddClaim handles POST /:userId/add-claim
// @Summary Submit an invoice image as a claim
// @Description Fetch the image, extract the claim fields with the configured model and store the claim.
// @Tags claims
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body AddClaimRequest true "Public image URL"
// @Success 201 {object} AddClaimResponse "Claim recorded"
// @Failure 400 {object} ErrorBody "Missing or invalid image URL"
// @Failure 404 {object} ErrorBody "User not found"
// @Failure 409 {object} ErrorBody "Duplicate claim number"
// @Failure 422 {object} ErrorBody "Claim number missing or fields unparseable"
// @Failure 429 {object} ErrorBody "Extraction rate limited"
// @Failure 502 {object} ErrorBody "Fetch or extraction failed"
// @Router /{userId}/add-claim [post]
func (h *ClaimHandler) AddClaim(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req AddClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_INPUT", "image is required")
		return
	}

	claim, err := h.extractionService.Submit(c.Request.Context(), service.SubmitClaimInput{
		UserID:   userID,
		ImageURL: req.Image,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Claim added successfully", "claim": claim})
}

// List handles GET /:userId/claims
// @Summary List a user's claims
// @Description Claims are returned in the order they were added.
// @Tags claims
// @Produce json
// @Param userId path string true "User ID"
// @Param status query string false "Normalized status filter"
// @Param search query string false "Match claim number, patient or provider"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (0 returns all)" default(0)
// @Success 200 {object} ClaimListResponse "Claims"
// @Failure 400 {object} ErrorBody "Unknown status"
// @Failure 404 {object} ErrorBody "User not found"
// @Router /{userId}/claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter := domain.ClaimFilter{
		Status: domain.ClaimStatus(strings.ToLower(c.Query("status"))),
		Search: c.Query("search"),
		Offset: offset,
		Limit:  limit,
	}

	claims, total, err := h.claimService.List(c.Request.Context(), userID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims, "total": total})
}

// Get handles GET /:userId/claims/:claimNumber
// @Summary Get one claim
// @Tags claims
// @Produce json
// @Param userId path string true "User ID"
// @Param claimNumber path string true "Claim number"
// @Success 200 {object} ClaimResponse "Claim"
// @Failure 404 {object} ErrorBody "User or claim not found"
// @Router /{userId}/claims/{claimNumber} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	claim, err := h.claimService.Get(c.Request.Context(), userID, c.Param("claimNumber"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// Delete handles DELETE /:userId/claims/:claimNumber
// @Summary Delete one claim
// @Tags claims
// @Produce json
// @Param userId path string true "User ID"
// @Param claimNumber path string true "Claim number"
// @Success 200 {object} MessageBody "Claim deleted"
// @Failure 404 {object} ErrorBody "User or claim not found"
// @Router /{userId}/claims/{claimNumber} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.claimService.Delete(c.Request.Context(), userID, c.Param("claimNumber")); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageBody{Message: "Claim deleted successfully"})
}

// Export handles GET /:userId/claims/export
// @Summary Export a user's claims
// @Tags claims
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param userId path string true "User ID"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Claims export"
// @Failure 400 {object} ErrorBody "Unknown format"
// @Failure 404 {object} ErrorBody "User not found"
// @Router /{userId}/claims/export [get]
func (h *ClaimHandler) Export(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	claims, _, err := h.claimService.List(c.Request.Context(), userID, domain.ClaimFilter{})
	if err != nil {
		HandleError(c, err)
		return
	}

	// Render into a buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, claims)
	} else {
		err = export.WriteCSV(&buf, claims)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("claims_"+userID.String()[:8], format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
