package models_test

import (
	"testing"
	"time"

	"hospital-app-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	live := models.RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.Usable(now))

	expired := models.RefreshToken{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Usable(now))

	revoked := models.RefreshToken{ExpiresAt: now.Add(time.Hour), IsRevoked: true}
	assert.False(t, revoked.Usable(now))
}
