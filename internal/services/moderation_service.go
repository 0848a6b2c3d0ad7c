package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
)

const MaxReasonLength = 255

// ModerationService hides and deletes kudos on behalf of admins. Every state change
// is committed together with its audit entry.
type ModerationService struct {
	store store.Store
	now   func() time.Time
}

func NewModerationService(st store.Store) *ModerationService {
	return &ModerationService{store: st, now: time.Now}
}

func (s *ModerationService) Hide(ctx context.Context, actor identity.Identity, kudosID uint, reason string) (*models.ModerationLog, error) {
	entry, err := s.entry(actor, kudosID, models.ActionHide, reason)
	if err != nil {
		return nil, err
	}

	if err := s.store.HideKudos(ctx, entry); err != nil {
		return nil, s.storeError(err, "failed to hide kudos")
	}

	s.record(entry)
	return entry, nil
}

func (s *ModerationService) Delete(ctx context.Context, actor identity.Identity, kudosID uint, reason string) error {
	entry, err := s.entry(actor, kudosID, models.ActionDelete, reason)
	if err != nil {
		return err
	}

	if err := s.store.DeleteKudos(ctx, entry); err != nil {
		return s.storeError(err, "failed to delete kudos")
	}

	s.record(entry)
	return nil
}

// ListAll is the admin view of the ledger and includes hidden kudos.
func (s *ModerationService) ListAll(ctx context.Context, actor identity.Identity, recipientID uint, page Page) ([]models.KudosView, int64, error) {
	if !actor.Can(models.CapModerateKudos) {
		return nil, 0, ErrAdminRequired
	}

	items, total, err := s.store.ListKudos(ctx, store.KudosFilter{
		RecipientID:   recipientID,
		IncludeHidden: true,
		Offset:        page.Offset,
		Limit:         page.Limit,
	})
	if err != nil {
		return nil, 0, internal("failed to list kudos", err)
	}
	return items, total, nil
}

// entry checks the actor and reason before anything touches the store.
func (s *ModerationService) entry(actor identity.Identity, kudosID uint, action models.ModerationAction, reason string) (*models.ModerationLog, error) {
	if !actor.Can(models.CapModerateKudos) {
		slog.Warn("moderation denied", "user_id", actor.UserID, "role", actor.Role, "action", action, "kudos_id", kudosID)
		return nil, ErrAdminRequired
	}
	if kudosID == 0 {
		return nil, ErrKudosNotFound
	}

	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}

	entry := &models.ModerationLog{
		KudosID:   kudosID,
		AdminID:   actor.UserID,
		Action:    action,
		CreatedAt: s.now().UTC(),
	}
	if reason != "" {
		entry.Reason = &reason
	}
	return entry, nil
}

func (s *ModerationService) storeError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrKudosNotFound
	}
	return internal(msg, err)
}

func (s *ModerationService) record(entry *models.ModerationLog) {
	metrics.ModerationActions.WithLabelValues(string(entry.Action)).Inc()
	slog.Info("kudos moderated",
		"action", entry.Action,
		"kudos_id", entry.KudosID,
		"user_id", entry.AdminID,
		"log_id", entry.ID,
	)
}
