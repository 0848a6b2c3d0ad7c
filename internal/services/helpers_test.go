package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
	"github.com/stretchr/testify/require"
)

var (
	adminActor = identity.Identity{UserID: 99, Username: "admin", Role: models.RoleAdmin}
	userActor  = identity.Identity{UserID: 1, Username: "alice", Role: models.RoleUser}
)

// newTestStore seeds alice(1), bob(2), inactive carol(3), dave(4) and admin(99).
func newTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	users := []models.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Adams", Role: models.RoleUser, IsActive: true},
		{ID: 2, Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "Brown", Role: models.RoleUser, IsActive: true},
		{ID: 3, Username: "carol", Email: "carol@example.com", FirstName: "Carol", LastName: "Clark", Role: models.RoleUser, IsActive: false},
		{ID: 4, Username: "dave", Email: "dave@example.com", FirstName: "Dave", LastName: "Davis", Role: models.RoleUser, IsActive: true},
		{ID: 99, Username: "admin", Email: "admin@example.com", FirstName: "Ada", LastName: "Min", Role: models.RoleAdmin, IsActive: true},
	}
	for i := range users {
		require.NoError(t, st.CreateUser(context.Background(), &users[i]))
	}
	return st
}
