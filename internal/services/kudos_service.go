package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
)

// DuplicateWindow is how long a giver must wait before sending the same recipient
// another kudos.
const DuplicateWindow = time.Hour

// KudosService is the ledger: it creates kudos and serves the public feed.
type KudosService struct {
	store  store.Store
	filter *ContentFilter
	now    func() time.Time
}

// NewKudosService builds the ledger. A nil filter disables content screening.
func NewKudosService(st store.Store, filter *ContentFilter) *KudosService {
	return &KudosService{store: st, filter: filter, now: time.Now}
}

func (s *KudosService) Submit(ctx context.Context, giverID, recipientID uint, message string) (*models.Kudos, error) {
	message = strings.TrimSpace(message)
	if err := s.validate(giverID, recipientID, message); err != nil {
		return nil, err
	}

	recipient, err := s.store.FindUser(ctx, recipientID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, internal("failed to load recipient", err)
	}
	if err != nil || !recipient.IsActive {
		metrics.KudosRejected.WithLabelValues("recipient_not_found").Inc()
		return nil, ErrRecipientNotFound
	}

	createdAt := s.now().UTC()
	k := &models.Kudos{
		GiverID:     giverID,
		RecipientID: recipientID,
		Message:     message,
		IsVisible:   true,
		CreatedAt:   createdAt,
	}
	if err := s.store.InsertKudos(ctx, k, createdAt.Add(-DuplicateWindow)); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			metrics.KudosRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateKudos
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGiverNotFound
		}
		return nil, internal("failed to create kudos", err)
	}

	metrics.KudosSubmitted.Inc()
	slog.Info("kudos submitted", "kudos_id", k.ID, "giver_id", giverID, "recipient_id", recipientID)
	return k, nil
}

func (s *KudosService) validate(giverID, recipientID uint, message string) error {
	var err error
	switch {
	case recipientID == 0:
		err = ErrRecipientRequired
	case giverID == recipientID:
		err = ErrSelfKudos
	case message == "":
		err = ErrEmptyMessage
	case utf8.RuneCountInString(message) > models.MaxKudosMessageLength:
		err = ErrMessageTooLong
	}
	if err != nil {
		metrics.KudosRejected.WithLabelValues("validation").Inc()
		return err
	}

	if s.filter != nil {
		if ok, reason := s.filter.Check(message); !ok {
			metrics.KudosRejected.WithLabelValues(reason).Inc()
			return newError(ErrValidation, s.filter.RejectionMessage(reason))
		}
	}
	return nil
}

// ListVisible returns the public feed, optionally for a single recipient (0 = all).
func (s *KudosService) ListVisible(ctx context.Context, recipientID uint, page Page) ([]models.KudosView, int64, error) {
	items, total, err := s.store.ListKudos(ctx, store.KudosFilter{
		RecipientID: recipientID,
		Offset:      page.Offset,
		Limit:       page.Limit,
	})
	if err != nil {
		return nil, 0, internal("failed to list kudos", err)
	}
	return items, total, nil
}

// GetVisible treats a hidden kudos exactly like a missing one.
func (s *KudosService) GetVisible(ctx context.Context, id uint) (*models.KudosView, error) {
	view, err := s.store.FindKudos(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrKudosNotFound
		}
		return nil, internal("failed to load kudos", err)
	}
	if !view.IsVisible {
		return nil, ErrKudosNotFound
	}
	return view, nil
}
