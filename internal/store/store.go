// Package store is the persistence boundary for users, kudos and the moderation
// audit trail. Each operation is a distinct typed method; the ones that touch more
// than one record are atomic.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("kudos already given within window")
)

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// KudosFilter selects kudos for listing. RecipientID 0 means any recipient.
type KudosFilter struct {
	RecipientID   uint
	IncludeHidden bool
	Offset        int
	Limit         int
}

type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	SetUserActive(ctx context.Context, id uint, active bool) error
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	SearchActiveUsers(ctx context.Context, term string, offset, limit int) ([]models.User, int64, error)

	// InsertKudos stores k unless the same giver already gave the same recipient a
	// kudos created after since, in which case it returns ErrDuplicate. The check and
	// the insert are one serialized unit. An unknown giver yields ErrNotFound.
	InsertKudos(ctx context.Context, k *models.Kudos, since time.Time) error
	FindKudos(ctx context.Context, id uint) (*models.KudosView, error)
	ListKudos(ctx context.Context, filter KudosFilter) ([]models.KudosView, int64, error)

	// HideKudos applies entry to the kudos it names and appends entry, atomically.
	HideKudos(ctx context.Context, entry *models.ModerationLog) error
	// DeleteKudos appends entry and then removes the kudos, atomically.
	DeleteKudos(ctx context.Context, entry *models.ModerationLog) error
	ListModerationLogs(ctx context.Context, offset, limit int) ([]models.ModerationLogView, int64, error)
}
