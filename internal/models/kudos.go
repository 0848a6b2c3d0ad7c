package models

import "time"

// MaxKudosMessageLength is measured in characters (runes), not bytes.
const MaxKudosMessageLength = 500

// Kudos is a single public appreciation message from one user to another.
type Kudos struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	GiverID          uint       `gorm:"not null;index:idx_kudos_pair_created,priority:1" json:"giver_id"`
	RecipientID      uint       `gorm:"not null;index;index:idx_kudos_pair_created,priority:2" json:"recipient_id"`
	Message          string     `gorm:"type:text;not null" json:"message"`
	IsVisible        bool       `gorm:"not null;default:true;index" json:"is_visible"`
	ModeratedBy      *uint      `json:"moderated_by"`
	ModeratedAt      *time.Time `json:"moderated_at"`
	ModerationReason *string    `gorm:"size:255" json:"moderation_reason"`
	CreatedAt        time.Time  `gorm:"index;index:idx_kudos_pair_created,priority:3" json:"created_at"`
	UpdatedAt        time.Time  `json:"-"`
}

func (Kudos) TableName() string {
	return "kudos"
}

// KudosView is a kudos joined with the display fields of both parties.
type KudosView struct {
	Kudos
	GiverUsername      string `json:"giver_username"`
	GiverFirstName     string `json:"giver_first_name"`
	GiverLastName      string `json:"giver_last_name"`
	RecipientUsername  string `json:"recipient_username"`
	RecipientFirstName string `json:"recipient_first_name"`
	RecipientLastName  string `json:"recipient_last_name"`
}
