package services

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues the tokens that the JWT middleware later verifies.
type AuthService struct {
	store  store.Store
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:  st,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, newError(ErrValidation, "username and password are required")
	}

	user, err := s.store.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internal("failed to load user", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := identity.Claims(user)
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.expiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", internal("failed to sign token", err)
	}
	return signed, nil
}

// Me returns the caller's own directory record. Deactivated accounts holding a
// still-valid token get ErrUserNotFound.
func (s *AuthService) Me(ctx context.Context, actor identity.Identity) (*models.User, error) {
	user, err := s.store.FindUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal("failed to load user", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", newError(ErrValidation, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", internal("failed to hash password", err)
	}
	return string(hash), nil
}
