package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-market/internal/models"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)
}

func TestTokenManager_GeneratePair_ParseAccess(t *testing.T) {
	tm := newTestTokenManager()
	user := &models.User{ID: uuid.New(), Role: models.RoleFreelancer}

	pair, accessExp, refreshExp, err := tm.GeneratePair(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, refreshExp.After(accessExp))

	userID, role, err := tm.ParseAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, models.RoleFreelancer, role)
}

func TestTokenManager_ParseAccess_WrongSecret(t *testing.T) {
	tm := newTestTokenManager()
	other := NewTokenManager("other-access", "other-refresh", 15*time.Minute, 720*time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, _, _, err := tm.GeneratePair(user)
	assert.NoError(t, err)

	_, _, err = other.ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess_RefreshTokenRejected(t *testing.T) {
	tm := newTestTokenManager()
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, _, _, err := tm.GeneratePair(user)
	assert.NoError(t, err)

	// Refresh токен подписан другим секретом и не проходит как access.
	_, _, err = tm.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestTokenManager_ParseRefresh(t *testing.T) {
	tm := newTestTokenManager()
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, _, _, err := tm.GeneratePair(user)
	assert.NoError(t, err)

	claims, err := tm.ParseRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_ParseRefresh_Expired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, _, _, err := tm.GeneratePair(user)
	assert.NoError(t, err)

	_, err = tm.ParseRefresh(pair.RefreshToken)
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess_Garbage(t *testing.T) {
	tm := newTestTokenManager()

	_, _, err := tm.ParseAccess("not-a-token")
	assert.Error(t, err)
}
