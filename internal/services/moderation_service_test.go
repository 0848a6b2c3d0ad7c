package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHideRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ledger := NewKudosService(st, nil)
	moderation := NewModerationService(st)

	k, err := ledger.Submit(ctx, 1, 2, "Great work on the launch!")
	require.NoError(t, err)

	_, err = moderation.Hide(ctx, userActor, k.ID, "nope")
	assert.ErrorIs(t, err, ErrForbidden)
	err = moderation.Delete(ctx, userActor, k.ID, "nope")
	assert.ErrorIs(t, err, ErrForbidden)

	// role is checked before the kudos is looked up
	_, err = moderation.Hide(ctx, userActor, 424242, "nope")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrKudosNotFound)
	err = moderation.Delete(ctx, userActor, 424242, "nope")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = moderation.ListAll(ctx, userActor, 0, NewPage(0, 20))
	assert.ErrorIs(t, err, ErrForbidden)

	// an empty identity is never an admin, even with the role set
	_, err = moderation.Hide(ctx, identity.Identity{Role: adminActor.Role}, k.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := ledger.GetVisible(ctx, k.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVisible)
	assert.Nil(t, got.ModerationReason)

	_, total, err := st.ListModerationLogs(ctx, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestHideMissingKudos(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	moderation := NewModerationService(st)

	_, err := moderation.Hide(ctx, adminActor, 404, "spam")
	assert.ErrorIs(t, err, ErrKudosNotFound)
	_, err = moderation.Hide(ctx, adminActor, 0, "spam")
	assert.ErrorIs(t, err, ErrNotFound)

	_, total, err := st.ListModerationLogs(ctx, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestHideReason(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ledger := NewKudosService(st, nil)
	moderation := NewModerationService(st)

	k, err := ledger.Submit(ctx, 1, 2, "Nice")
	require.NoError(t, err)

	_, err = moderation.Hide(ctx, adminActor, k.ID, strings.Repeat("r", 256))
	assert.ErrorIs(t, err, ErrReasonTooLong)
	assert.ErrorIs(t, err, ErrValidation)

	entry, err := moderation.Hide(ctx, adminActor, k.ID, "   ")
	require.NoError(t, err)
	assert.Nil(t, entry.Reason)

	// hiding again is allowed and leaves a second entry
	entry, err = moderation.Hide(ctx, adminActor, k.ID, " off-topic ")
	require.NoError(t, err)
	require.NotNil(t, entry.Reason)
	assert.Equal(t, "off-topic", *entry.Reason)

	logs, total, err := st.ListModerationLogs(ctx, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].Reason)
	assert.Equal(t, "off-topic", *logs[0].Reason)
	assert.Nil(t, logs[1].Reason)
}

func TestDeleteKeepsAuditTrail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ledger := NewKudosService(st, nil)
	moderation := NewModerationService(st)
	audit := NewAuditService(st)

	k, err := ledger.Submit(ctx, 1, 2, "Great work on the launch!")
	require.NoError(t, err)

	_, err = moderation.Hide(ctx, adminActor, k.ID, "review")
	require.NoError(t, err)
	require.NoError(t, moderation.Delete(ctx, adminActor, k.ID, "harassment"))

	err = moderation.Delete(ctx, adminActor, k.ID, "again")
	assert.ErrorIs(t, err, ErrKudosNotFound)
	_, err = moderation.Hide(ctx, adminActor, k.ID, "again")
	assert.ErrorIs(t, err, ErrKudosNotFound)

	_, total, err := moderation.ListAll(ctx, adminActor, 0, NewPage(0, 20))
	require.NoError(t, err)
	assert.Zero(t, total)

	logs, total, err := audit.ListModerationLogs(ctx, adminActor, NewPage(0, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)
	assert.EqualValues(t, "delete", logs[0].Action)
	assert.EqualValues(t, "hide", logs[1].Action)
	for _, l := range logs {
		assert.Equal(t, k.ID, l.KudosID)
		assert.Nil(t, l.KudosMessage)
	}
}

func TestListAllIncludesHidden(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ledger := NewKudosService(st, nil)
	moderation := NewModerationService(st)

	a, err := ledger.Submit(ctx, 1, 2, "one")
	require.NoError(t, err)
	_, err = ledger.Submit(ctx, 4, 2, "two")
	require.NoError(t, err)
	_, err = ledger.Submit(ctx, 2, 1, "three")
	require.NoError(t, err)

	_, err = moderation.Hide(ctx, adminActor, a.ID, "")
	require.NoError(t, err)

	items, total, err := moderation.ListAll(ctx, adminActor, 2, NewPage(0, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	_, total, err = NewKudosService(st, nil).ListVisible(ctx, 2, NewPage(0, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAuditRequiresAdmin(t *testing.T) {
	_, _, err := NewAuditService(newTestStore(t)).ListModerationLogs(context.Background(), userActor, NewPage(0, 20))
	assert.ErrorIs(t, err, ErrForbidden)
}
