package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	st := newTestStore(t)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.CreateUser(ctx, &models.User{
		ID: 10, Username: "erin", Email: "erin@example.com", Password: hash,
		FirstName: "Erin", LastName: "Evans", Role: models.RoleAdmin, IsActive: true,
	}))
	require.NoError(t, st.CreateUser(ctx, &models.User{
		ID: 11, Username: "frank", Email: "frank@example.com", Password: hash,
		FirstName: "Frank", LastName: "Ford", Role: models.RoleUser, IsActive: false,
	}))

	return NewAuthService(st, &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})
}

func TestLogin(t *testing.T) {
	s := newAuthService(t)
	issued := time.Now().Truncate(time.Second)
	s.now = func() time.Time { return issued }

	resp, err := s.Login(context.Background(), &dto.LoginRequest{Username: "erin", Password: "correct horse"})
	require.NoError(t, err)
	assert.EqualValues(t, 10, resp.User.ID)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	id, err := identity.FromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{UserID: 10, Username: "erin", Role: models.RoleAdmin}, id)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour).Unix(), exp.Unix())
}

func TestLoginFailures(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	_, err := s.Login(ctx, &dto.LoginRequest{Username: "erin", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &dto.LoginRequest{Username: "frank", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.Login(ctx, &dto.LoginRequest{Username: "erin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMe(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	user, err := s.Me(ctx, identity.Identity{UserID: 10, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "erin", user.Username)

	_, err = s.Me(ctx, identity.Identity{UserID: 11, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Me(ctx, identity.Identity{UserID: 500, Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrValidation)

	hash, err := HashPassword("long enough")
	require.NoError(t, err)
	assert.NotEqual(t, "long enough", hash)
}
