package models

import "time"

// ModerationAction is the audit vocabulary. ActionRestore is reserved: it is a valid
// value in stored entries but no operation produces it yet.
type ModerationAction string

const (
	ActionHide    ModerationAction = "hide"
	ActionDelete  ModerationAction = "delete"
	ActionRestore ModerationAction = "restore"
)

func (a ModerationAction) Valid() bool {
	switch a {
	case ActionHide, ActionDelete, ActionRestore:
		return true
	}
	return false
}

// Reserved reports actions that exist in the vocabulary without a reachable operation.
func (a ModerationAction) Reserved() bool {
	return a == ActionRestore
}

// ModerationLog is an append-only audit entry. KudosID deliberately carries no
// foreign key so entries outlive the kudos they describe.
type ModerationLog struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	KudosID   uint             `gorm:"not null;index" json:"kudos_id"`
	AdminID   uint             `gorm:"not null;index" json:"admin_id"`
	Action    ModerationAction `gorm:"size:20;not null" json:"action"`
	Reason    *string          `gorm:"size:255" json:"reason"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`
}

// ModerationLogView joins an entry with the acting admin and, while it still
// exists, the moderated message.
type ModerationLogView struct {
	ModerationLog
	AdminUsername string  `json:"admin_username"`
	KudosMessage  *string `json:"kudos_message"`
}
