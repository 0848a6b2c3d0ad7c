package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	assert.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	_, err = ParseRole("Admin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleUser.Can(CapSubmitKudos))
	assert.False(t, RoleUser.Can(CapModerateKudos))
	assert.False(t, RoleUser.Can(CapReadAuditLog))

	assert.True(t, RoleAdmin.Can(CapSubmitKudos))
	assert.True(t, RoleAdmin.Can(CapModerateKudos))
	assert.True(t, RoleAdmin.Can(CapReadAuditLog))

	assert.False(t, Role("moderator").Can(CapModerateKudos))
}

func TestModerationActionVocabulary(t *testing.T) {
	for _, a := range []ModerationAction{ActionHide, ActionDelete, ActionRestore} {
		assert.True(t, a.Valid(), a)
	}
	assert.False(t, ModerationAction("ban").Valid())
	assert.True(t, ActionRestore.Reserved())
	assert.False(t, ActionHide.Reserved())
}
