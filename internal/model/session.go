package model

import (
	"time"
)

const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// MissedQuestion is one entry in a completed session's summary. It carries
// only what the learner already saw plus their own submission, never the
// hidden expected value.
type MissedQuestion struct {
	InstanceID string `json:"instance_id"`
	Title      string `json:"title,omitempty"`
	Prompt     string `json:"prompt"`
	Submitted  string `json:"submitted,omitempty"`
}

// PracticeSession tracks progress toward a target number of finalized
// exercises. Total and Correct equal the count of distinct finalized
// instances belonging to the session; they are only incremented under the
// finalize guard and never decremented.
type PracticeSession struct {
	ID           string  `gorm:"primarykey;size:36" json:"id"`
	AssignmentID *string `gorm:"index" json:"assignment_id,omitempty"`
	SectionID    string  `gorm:"not null;index" json:"section_id"`
	Difficulty   string  `gorm:"not null" json:"difficulty"`
	TargetCount  int     `gorm:"not null" json:"target_count"`
	Total        int     `gorm:"not null;default:0" json:"total"`
	Correct      int     `gorm:"not null;default:0" json:"correct"`
	Status       string  `gorm:"not null;default:'active'" json:"status"`
	UserID       *string `gorm:"index" json:"user_id,omitempty"`
	GuestID      *string `gorm:"index" json:"guest_id,omitempty"`

	// Summary holds the missed-question list, populated when the session
	// flips to completed.
	Summary []byte `gorm:"type:jsonb" json:"-"`

	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Actor returns the identity the session belongs to.
func (s *PracticeSession) Actor() Actor {
	return Actor{UserID: s.UserID, GuestID: s.GuestID}
}
