// Package identity turns the verified JWT placed in the request context by the
// auth middleware into the (user id, role) pair the services work with.
package identity

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is where the JWT middleware stores the parsed token.
const ContextKey = "user"

var ErrNoIdentity = errors.New("no verified identity in request")

// Identity is an authenticated caller.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

func (i Identity) Can(c models.Capability) bool {
	return i.UserID != 0 && i.Role.Can(c)
}

// Claims builds the token claims for a user; FromClaims is its inverse.
func Claims(user *models.User) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     user.Role.String(),
	}
}

func FromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing sub claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, errors.New("invalid sub claim")
	}

	rawRole, _ := claims["role"].(string)
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return Identity{}, err
	}

	username, _ := claims["username"].(string)
	return Identity{UserID: uint(id), Username: username, Role: role}, nil
}

// FromContext extracts the caller from JWT claims in context.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	return FromClaims(claims)
}
