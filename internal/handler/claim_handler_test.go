package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartclaim/internal/domain"
	"smartclaim/internal/export"
	"smartclaim/internal/handler"
	"smartclaim/internal/middleware"
	"smartclaim/internal/service"
	"smartclaim/mocks"
)

func claimContext(method, path string, userID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var c *gin.Context
	var w *httptest.ResponseRecorder
	if body != nil {
		c, w = jsonContext(method, path, body)
	} else {
		w = httptest.NewRecorder()
		c, _ = gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(method, path, http.NoBody)
	}
	c.Params = gin.Params{{Key: "userId", Value: userID}}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorBody {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestClaimHandler_AddClaim_Success(t *testing.T) {
	mockExtract := new(mocks.MockExtractionService)
	h := handler.NewClaimHandler(mockExtract, new(mocks.MockClaimService))
	userID := uuid.New()

	mockExtract.On("Submit", mock.Anything, service.SubmitClaimInput{
		UserID: userID, ImageURL: "https://cdn.example.com/a.png",
	}).Return(&domain.Claim{ClaimNumber: "C100", UserID: userID}, nil)

	c, w := claimContext(http.MethodPost, "/x/add-claim", userID.String(),
		map[string]string{"image": "https://cdn.example.com/a.png"})
	h.AddClaim(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.AddClaimResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "C100", resp.Claim.ClaimNumber)
	assert.NotEmpty(t, resp.Message)
}

func TestClaimHandler_AddClaim_MissingImage(t *testing.T) {
	mockExtract := new(mocks.MockExtractionService)
	h := handler.NewClaimHandler(mockExtract, new(mocks.MockClaimService))

	c, w := claimContext(http.MethodPost, "/x/add-claim", uuid.New().String(), map[string]string{"image": "  "})
	h.AddClaim(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_INPUT", decodeError(t, w).Code)
	mockExtract.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestClaimHandler_AddClaim_InvalidUserID(t *testing.T) {
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), new(mocks.MockClaimService))

	c, w := claimContext(http.MethodPost, "/x/add-claim", "not-a-uuid", map[string]string{"image": "https://a/b.png"})
	h.AddClaim(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClaimHandler_AddClaim_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"user not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", false},
		{"duplicate", domain.ErrDuplicateClaim, http.StatusConflict, "DUPLICATE_CLAIM", false},
		{"validation", domain.ErrValidationFailed, http.StatusUnprocessableEntity, "VALIDATION_FAILED", false},
		{"fetch", domain.ErrFetchFailed, http.StatusBadGateway, "FETCH_FAILED", true},
		{"rate limited", domain.ErrExtractionRateLimited, http.StatusTooManyRequests, "EXTRACTION_RATE_LIMITED", true},
		{"extraction", domain.ErrExtractionFailed, http.StatusBadGateway, "EXTRACTION_FAILED", true},
		{"parse", domain.ErrParseFailed, http.StatusBadGateway, "PARSE_FAILED", true},
		{"storage", domain.ErrStorage, http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExtract := new(mocks.MockExtractionService)
			h := handler.NewClaimHandler(mockExtract, new(mocks.MockClaimService))
			mockExtract.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitClaimInput")).
				Return(nil, tt.err)

			c, w := claimContext(http.MethodPost, "/x/add-claim", uuid.New().String(),
				map[string]string{"image": "https://cdn.example.com/a.png"})
			h.AddClaim(c)

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.retryable, body.Retryable)
		})
	}
}

func TestClaimHandler_List(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	userID := uuid.New()

	mockClaims.On("List", mock.Anything, userID, domain.ClaimFilter{
		Status: domain.ClaimStatusPending, Search: "clinic", Offset: 10, Limit: 5,
	}).Return([]domain.Claim{{ClaimNumber: "C1"}, {ClaimNumber: "C2"}}, 12, nil)

	c, w := claimContext(http.MethodGet, "/x/claims?status=Pending&search=clinic&offset=10&limit=5", userID.String(), nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.ClaimListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Claims, 2)
	assert.Equal(t, "C1", resp.Claims[0].ClaimNumber)
	assert.Equal(t, 12, resp.Total)
}

func TestClaimHandler_List_UnknownStatus(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	userID := uuid.New()

	mockClaims.On("List", mock.Anything, userID, domain.ClaimFilter{Status: "bogus"}).
		Return(nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidFilter, "bogus"))

	c, w := claimContext(http.MethodGet, "/x/claims?status=bogus", userID.String(), nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "INVALID_STATUS", body.Code)
	assert.False(t, body.Retryable)
	for _, status := range domain.ClaimStatuses {
		assert.Contains(t, body.Error, string(status))
	}
	assert.Contains(t, body.Error, "unknown")
}

func TestClaimHandler_List_UnknownUser(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	mockClaims.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, 0, domain.ErrNotFound)

	c, w := claimContext(http.MethodGet, "/x/claims", uuid.New().String(), nil)
	h.List(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClaimHandler_GetAndDelete(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	userID := uuid.New()

	mockClaims.On("Get", mock.Anything, userID, "C100").Return(&domain.Claim{ClaimNumber: "C100"}, nil)
	mockClaims.On("Delete", mock.Anything, userID, "C404").Return(domain.ErrNotFound)

	c, w := claimContext(http.MethodGet, "/x/claims/C100", userID.String(), nil)
	c.Params = append(c.Params, gin.Param{Key: "claimNumber", Value: "C100"})
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"claimNumber":"C100"`)

	c, w = claimContext(http.MethodDelete, "/x/claims/C404", userID.String(), nil)
	c.Params = append(c.Params, gin.Param{Key: "claimNumber", Value: "C404"})
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClaimHandler_Export_CSV(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	userID := uuid.New()
	mockClaims.On("List", mock.Anything, userID, domain.ClaimFilter{}).
		Return([]domain.Claim{{ClaimNumber: "C1"}, {ClaimNumber: "C2"}}, 2, nil)

	c, w := claimContext(http.MethodGet, "/x/claims/export?format=csv", userID.String(), nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	data := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(data, export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(data[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestClaimHandler_Export_UnknownFormat(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)

	c, w := claimContext(http.MethodGet, "/x/claims/export?format=pdf", uuid.New().String(), nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockClaims.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimHandler_SessionUserMustMatchPath(t *testing.T) {
	mockClaims := new(mocks.MockClaimService)
	h := handler.NewClaimHandler(new(mocks.MockExtractionService), mockClaims)
	userID := uuid.New()

	t.Run("other user", func(t *testing.T) {
		c, w := claimContext(http.MethodGet, "/x/claims", userID.String(), nil)
		c.Set(middleware.ContextKeyUserID, uuid.New())
		h.List(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeError(t, w).Code)
		mockClaims.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same user", func(t *testing.T) {
		mockClaims.On("List", mock.Anything, userID, domain.ClaimFilter{}).Return([]domain.Claim{}, 0, nil)

		c, w := claimContext(http.MethodGet, "/x/claims", userID.String(), nil)
		c.Set(middleware.ContextKeyUserID, userID)
		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockClaims.AssertExpectations(t)
	})
}
