package model

import (
	"time"
)

// ExerciseInstance is one generated exercise bound to the actor that fetched
// it. AnsweredAt is null until the instance is finalized; it transitions to a
// timestamp exactly once and is the sole source of truth for whether the
// instance has counted toward its session.
type ExerciseInstance struct {
	ID         string  `gorm:"primarykey;size:36" json:"id"`
	Subject    string  `gorm:"not null" json:"subject"`
	Module     string  `json:"module,omitempty"`
	TopicID    string  `gorm:"not null;index" json:"topic_id"`
	Kind       Kind    `gorm:"not null" json:"kind"`
	Difficulty string  `gorm:"not null" json:"difficulty"`
	SessionID  *string `gorm:"index" json:"session_id,omitempty"`
	UserID     *string `gorm:"index" json:"user_id,omitempty"`
	GuestID    *string `gorm:"index" json:"guest_id,omitempty"`

	// Payloads are stored as canonical JSON. SecretPayload must never be
	// serialized to a client except through the reveal path.
	PublicPayload []byte `gorm:"type:jsonb;not null" json:"-"`
	SecretPayload []byte `gorm:"type:jsonb;not null" json:"-"`

	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `gorm:"index" json:"answered_at,omitempty"`
}

// Actor returns the identity the instance was generated for.
func (e *ExerciseInstance) Actor() Actor {
	return Actor{UserID: e.UserID, GuestID: e.GuestID}
}
