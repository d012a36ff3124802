package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartclaim/internal/domain"
	"smartclaim/internal/middleware"
	"smartclaim/internal/service"
	"smartclaim/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(authSvc *mocks.MockAuthService, requireToken bool) *gin.Engine {
	r := gin.New()
	r.GET("/:userId/claims", middleware.Session(authSvc, requireToken), func(c *gin.Context) {
		id, err := middleware.GetUserID(c)
		if err != nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func doGet(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession_NoTokenOptional(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	w := doGet(sessionRouter(authSvc, false), "/"+uuid.New().String()+"/claims", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestSession_NoTokenRequired(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	w := doGet(sessionRouter(authSvc, true), "/"+uuid.New().String()+"/claims", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_ValidTokenForSameUser(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	userID := uuid.New()
	authSvc.On("ValidateToken", "good").Return(&service.Claims{UserID: userID, Email: "a@x.com"}, nil)

	w := doGet(sessionRouter(authSvc, true), "/"+userID.String()+"/claims", "Bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestSession_TokenForAnotherUser(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "good").Return(&service.Claims{UserID: uuid.New()}, nil)

	w := doGet(sessionRouter(authSvc, false), "/"+uuid.New().String()+"/claims", "Bearer good")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestSession_InvalidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "bad").Return(nil, domain.ErrUnauthorized)

	w := doGet(sessionRouter(authSvc, false), "/"+uuid.New().String()+"/claims", "Bearer bad")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_MalformedHeader(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	w := doGet(sessionRouter(authSvc, false), "/"+uuid.New().String()+"/claims", "Basic abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	w = doGet(r, "/x", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := doGet(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
