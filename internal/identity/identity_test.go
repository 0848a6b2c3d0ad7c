package identity

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsRoundTrip(t *testing.T) {
	user := &models.User{ID: 99, Username: "ada", Role: models.RoleAdmin}

	id, err := FromClaims(Claims(user))
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 99, Username: "ada", Role: models.RoleAdmin}, id)
	assert.True(t, id.Can(models.CapModerateKudos))
}

func TestFromClaimsRejectsBadInput(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"missing sub":  {"role": "user"},
		"numeric sub":  {"sub": 7, "role": "user"},
		"zero sub":     {"sub": "0", "role": "user"},
		"garbage sub":  {"sub": "abc", "role": "user"},
		"unknown role": {"sub": "7", "role": "superuser"},
		"missing role": {"sub": "7"},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromClaims(claims)
			assert.Error(t, err)
		})
	}
}

func TestZeroIdentityHasNoCapabilities(t *testing.T) {
	assert.False(t, Identity{Role: models.RoleAdmin}.Can(models.CapModerateKudos))
	assert.False(t, Identity{UserID: 1, Role: models.RoleUser}.Can(models.CapModerateKudos))
	assert.True(t, Identity{UserID: 1, Role: models.RoleUser}.Can(models.CapSubmitKudos))
}
