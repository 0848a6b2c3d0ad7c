package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
)

// MemoryStore keeps everything in maps behind one lock. Every method runs under
// that lock, which makes each multi-record operation atomic.
type MemoryStore struct {
	mu sync.RWMutex

	users   map[uint]models.User
	kudos   map[uint]models.Kudos
	logs    []models.ModerationLog
	userSeq uint
	kudoSeq uint
	logSeq  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uint]models.User),
		kudos: make(map[uint]models.Kudos),
	}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user %q already exists", user.Username)
		}
	}

	if user.ID == 0 {
		s.userSeq++
		user.ID = s.userSeq
	} else if user.ID > s.userSeq {
		s.userSeq = user.ID
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) SetUserActive(_ context.Context, id uint, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

func (s *MemoryStore) FindUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SearchActiveUsers(_ context.Context, term string, offset, limit int) ([]models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	matched := make([]models.User, 0)
	for _, u := range s.users {
		if !u.IsActive {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Username), term) &&
			!strings.Contains(strings.ToLower(u.FirstName), term) &&
			!strings.Contains(strings.ToLower(u.LastName), term) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return paginate(matched, offset, limit), int64(len(matched)), nil
}

func (s *MemoryStore) InsertKudos(_ context.Context, k *models.Kudos, since time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[k.GiverID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.kudos {
		if existing.GiverID == k.GiverID && existing.RecipientID == k.RecipientID && existing.CreatedAt.After(since) {
			return ErrDuplicate
		}
	}

	s.kudoSeq++
	k.ID = s.kudoSeq
	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now().UTC()
	}
	k.UpdatedAt = k.CreatedAt
	s.kudos[k.ID] = *k
	return nil
}

func (s *MemoryStore) FindKudos(_ context.Context, id uint) (*models.KudosView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.kudos[id]
	if !ok {
		return nil, ErrNotFound
	}
	view, ok := s.viewOf(k)
	if !ok {
		return nil, ErrNotFound
	}
	return &view, nil
}

func (s *MemoryStore) ListKudos(_ context.Context, f KudosFilter) ([]models.KudosView, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.KudosView, 0)
	for _, k := range s.kudos {
		if !f.IncludeHidden && !k.IsVisible {
			continue
		}
		if f.RecipientID != 0 && k.RecipientID != f.RecipientID {
			continue
		}
		if view, ok := s.viewOf(k); ok {
			views = append(views, view)
		}
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return paginate(views, f.Offset, f.Limit), int64(len(views)), nil
}

func (s *MemoryStore) HideKudos(_ context.Context, entry *models.ModerationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.kudos[entry.KudosID]
	if !ok {
		return ErrNotFound
	}

	adminID := entry.AdminID
	at := entry.CreatedAt
	k.IsVisible = false
	k.ModeratedBy = &adminID
	k.ModeratedAt = &at
	k.ModerationReason = cloneString(entry.Reason)
	k.UpdatedAt = at
	s.kudos[k.ID] = k

	s.appendLog(entry)
	return nil
}

func (s *MemoryStore) DeleteKudos(_ context.Context, entry *models.ModerationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.kudos[entry.KudosID]; !ok {
		return ErrNotFound
	}

	s.appendLog(entry)
	delete(s.kudos, entry.KudosID)
	return nil
}

func (s *MemoryStore) ListModerationLogs(_ context.Context, offset, limit int) ([]models.ModerationLogView, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.ModerationLogView, 0, len(s.logs))
	for _, entry := range s.logs {
		admin, ok := s.users[entry.AdminID]
		if !ok {
			continue
		}
		view := models.ModerationLogView{ModerationLog: entry, AdminUsername: admin.Username}
		view.Reason = cloneString(entry.Reason)
		if k, ok := s.kudos[entry.KudosID]; ok {
			msg := k.Message
			view.KudosMessage = &msg
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return paginate(views, offset, limit), int64(len(views)), nil
}

// appendLog must be called with mu held.
func (s *MemoryStore) appendLog(entry *models.ModerationLog) {
	s.logSeq++
	entry.ID = s.logSeq
	stored := *entry
	stored.Reason = cloneString(entry.Reason)
	s.logs = append(s.logs, stored)
}

// viewOf must be called with mu held. Like the SQL join, a kudos whose parties are
// missing from the directory is not returned.
func (s *MemoryStore) viewOf(k models.Kudos) (models.KudosView, bool) {
	giver, ok := s.users[k.GiverID]
	if !ok {
		return models.KudosView{}, false
	}
	recipient, ok := s.users[k.RecipientID]
	if !ok {
		return models.KudosView{}, false
	}

	k.ModerationReason = cloneString(k.ModerationReason)
	return models.KudosView{
		Kudos:              k,
		GiverUsername:      giver.Username,
		GiverFirstName:     giver.FirstName,
		GiverLastName:      giver.LastName,
		RecipientUsername:  recipient.Username,
		RecipientFirstName: recipient.FirstName,
		RecipientLastName:  recipient.LastName,
	}, true
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
