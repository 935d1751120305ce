package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unidash/internal/config"
	"unidash/internal/models"
)

func testConfig() config.App {
	return config.App{
		AccessSecret:  "test-access",
		RefreshSecret: "test-refresh",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Configure(testConfig())

	pair, err := IssueTokens(42, models.RoleLecturer)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	id, role, err := ParseAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, models.RoleLecturer, role)

	id, role, err = ParseRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, models.RoleLecturer, role)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	Configure(testConfig())

	pair, err := IssueTokens(1, models.RoleAdmin)
	assert.NoError(t, err)

	_, _, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, _, err = ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTL = -time.Minute
	Configure(cfg)

	pair, err := IssueTokens(7, models.RoleAdmin)
	assert.NoError(t, err)

	_, _, err = ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}
