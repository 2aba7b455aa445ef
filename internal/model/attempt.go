package model

import (
	"time"
)

// Attempt is an immutable log row for one submission against an instance.
// Many attempts may exist per instance; only the first finalizing one affects
// session counters.
type Attempt struct {
	ID         string  `gorm:"primarykey;size:36" json:"id"`
	InstanceID string  `gorm:"not null;index" json:"instance_id"`
	SessionID  *string `gorm:"index" json:"session_id,omitempty"`
	UserID     *string `gorm:"index" json:"user_id,omitempty"`
	GuestID    *string `json:"guest_id,omitempty"`

	AnswerPayload []byte `gorm:"type:jsonb" json:"-"`
	OK            bool   `gorm:"not null" json:"ok"`
	RevealUsed    bool   `gorm:"not null" json:"reveal_used"`
	Finalizing    bool   `gorm:"not null" json:"finalizing"`

	CreatedAt time.Time `json:"created_at"`
}
