package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DirectoryService answers user lookups for the HTTP surface. Single-user reads go
// through a short-lived LRU; the kudos ledger bypasses it and reads the store.
type DirectoryService struct {
	store store.Store
	cache *expirable.LRU[uint, models.User]
	group singleflight.Group
}

func NewDirectoryService(st store.Store, cacheSize int, ttl time.Duration) *DirectoryService {
	return &DirectoryService{
		store: st,
		cache: expirable.NewLRU[uint, models.User](cacheSize, nil, ttl),
	}
}

// FindActiveByID returns ErrUserNotFound for unknown and inactive users alike.
func (s *DirectoryService) FindActiveByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}

	user, ok := s.cache.Get(id)
	if ok {
		metrics.DirectoryLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.DirectoryLookups.WithLabelValues("miss").Inc()
		v, err, _ := s.group.Do(strconv.FormatUint(uint64(id), 10), func() (any, error) {
			u, err := s.store.FindUser(ctx, id)
			if err != nil {
				return nil, err
			}
			s.cache.Add(id, *u)
			return *u, nil
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, internal("failed to load user", err)
		}
		user = v.(models.User)
	}

	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *DirectoryService) Search(ctx context.Context, term string, page Page) ([]models.User, int64, error) {
	users, total, err := s.store.SearchActiveUsers(ctx, strings.TrimSpace(term), page.Offset, page.Limit)
	if err != nil {
		return nil, 0, internal("failed to search users", err)
	}
	return users, total, nil
}
