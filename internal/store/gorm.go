package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const kudosViewColumns = "kudos.*, " +
	"g.username AS giver_username, g.first_name AS giver_first_name, g.last_name AS giver_last_name, " +
	"r.username AS recipient_username, r.first_name AS recipient_first_name, r.last_name AS recipient_last_name"

// GormStore is the SQL-backed Store. Postgres in production; sqlite works for local
// runs, where row locks are a no-op and the single connection serializes writers.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormStore) SetUserActive(ctx context.Context, id uint, active bool) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) SearchActiveUsers(ctx context.Context, term string, offset, limit int) ([]models.User, int64, error) {
	term = strings.TrimSpace(term)
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true)
		if term != "" {
			pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
			q = q.Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\')`,
				pattern, pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query().Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *GormStore) InsertKudos(ctx context.Context, k *models.Kudos, since time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the giver row so concurrent submissions from the same giver queue up
		// behind each other before the window check runs. A missing giver has no row
		// to lock, so it is rejected rather than inserted unserialized.
		var giver models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&giver, k.GiverID).Error; err != nil {
			return notFound(err)
		}

		var recent int64
		if err := tx.Model(&models.Kudos{}).
			Where("giver_id = ? AND recipient_id = ? AND created_at > ?", k.GiverID, k.RecipientID, since).
			Count(&recent).Error; err != nil {
			return err
		}
		if recent > 0 {
			return ErrDuplicate
		}

		return tx.Create(k).Error
	})
}

func (s *GormStore) FindKudos(ctx context.Context, id uint) (*models.KudosView, error) {
	var views []models.KudosView
	if err := s.kudosView(s.db.WithContext(ctx)).
		Select(kudosViewColumns).
		Where("kudos.id = ?", id).
		Limit(1).
		Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}

func (s *GormStore) ListKudos(ctx context.Context, f KudosFilter) ([]models.KudosView, int64, error) {
	query := func() *gorm.DB {
		q := s.kudosView(s.db.WithContext(ctx))
		if !f.IncludeHidden {
			q = q.Where("kudos.is_visible = ?", true)
		}
		if f.RecipientID != 0 {
			q = q.Where("kudos.recipient_id = ?", f.RecipientID)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	views := make([]models.KudosView, 0, f.Limit)
	if err := query().
		Select(kudosViewColumns).
		Order("kudos.created_at DESC, kudos.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *GormStore) HideKudos(ctx context.Context, entry *models.ModerationLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		k, err := lockKudos(tx, entry.KudosID)
		if err != nil {
			return err
		}

		if err := tx.Model(k).Updates(map[string]interface{}{
			"is_visible":        false,
			"moderated_by":      entry.AdminID,
			"moderated_at":      entry.CreatedAt,
			"moderation_reason": entry.Reason,
		}).Error; err != nil {
			return err
		}

		return tx.Create(entry).Error
	})
}

func (s *GormStore) DeleteKudos(ctx context.Context, entry *models.ModerationLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		k, err := lockKudos(tx, entry.KudosID)
		if err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Kudos{}, k.ID).Error
	})
}

func (s *GormStore) ListModerationLogs(ctx context.Context, offset, limit int) ([]models.ModerationLogView, int64, error) {
	query := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Table("moderation_logs").
			Joins("JOIN users a ON a.id = moderation_logs.admin_id").
			Joins("LEFT JOIN kudos k ON k.id = moderation_logs.kudos_id")
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	views := make([]models.ModerationLogView, 0, limit)
	if err := query().
		Select("moderation_logs.*, a.username AS admin_username, k.message AS kudos_message").
		Order("moderation_logs.created_at DESC, moderation_logs.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *GormStore) kudosView(db *gorm.DB) *gorm.DB {
	return db.Table("kudos").
		Joins("JOIN users g ON g.id = kudos.giver_id").
		Joins("JOIN users r ON r.id = kudos.recipient_id")
}

func lockKudos(tx *gorm.DB, id uint) (*models.Kudos, error) {
	var k models.Kudos
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&k, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &k, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
