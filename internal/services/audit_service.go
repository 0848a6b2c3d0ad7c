package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
)

// AuditService reads the moderation trail. It never writes.
type AuditService struct {
	store store.Store
}

func NewAuditService(st store.Store) *AuditService {
	return &AuditService{store: st}
}

func (s *AuditService) ListModerationLogs(ctx context.Context, actor identity.Identity, page Page) ([]models.ModerationLogView, int64, error) {
	if !actor.Can(models.CapReadAuditLog) {
		return nil, 0, ErrAdminRequired
	}

	items, total, err := s.store.ListModerationLogs(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, internal("failed to list moderation logs", err)
	}
	return items, total, nil
}
