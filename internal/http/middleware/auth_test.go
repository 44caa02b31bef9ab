package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/service"
)

func newAuthTestRouter(tokens *service.TokenManager) (*gin.Engine, *struct {
	userID uuid.UUID
	role   string
}) {
	gin.SetMode(gin.TestMode)

	seen := &struct {
		userID uuid.UUID
		role   string
	}{}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		seen.userID = c.MustGet(ContextUserIDKey).(uuid.UUID)
		seen.role = c.MustGet(ContextRoleKey).(string)
		c.Status(http.StatusOK)
	})

	return r, seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	router, seen := newAuthTestRouter(tokens)

	user := &models.User{ID: uuid.New(), Role: models.RoleFreelancer}
	pair, _, _, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, seen.userID)
	assert.Equal(t, models.RoleFreelancer, seen.role)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokens := service.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	router, _ := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	tokens := service.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	router, _ := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	tokens := service.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	router, _ := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ForeignSecret(t *testing.T) {
	other := service.NewTokenManager("other-secret", "other-refresh", time.Minute, time.Hour)
	pair, _, _, err := other.GeneratePair(&models.User{ID: uuid.New(), Role: models.RoleClient})
	assert.NoError(t, err)

	tokens := service.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	router, _ := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
