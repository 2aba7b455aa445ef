package dto

import (
	"time"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// FetchExerciseResponse hands the client the rendered exercise and the
// capability key that authorizes submitting an answer for it.
type FetchExerciseResponse struct {
	InstanceID    string              `json:"instance_id"`
	PublicPayload model.PublicPayload `json:"exercise"`
	Key           string              `json:"key"`
	ExpiresAt     time.Time           `json:"expires_at"`
}

// RevealedAnswer is the policy-gated disclosure of the expected value. It is
// the only path on which secret payload content reaches a client.
type RevealedAnswer struct {
	Expected  []string         `json:"expected,omitempty"`
	Value     *float64         `json:"value,omitempty"`
	Matrix    [][]float64      `json:"matrix,omitempty"`
	CodeRules *model.CodeRules `json:"code_rules,omitempty"`
}

// SubmitAnswerResponse reports the outcome of one submission.
type SubmitAnswerResponse struct {
	OK              bool                   `json:"ok"`
	Message         string                 `json:"message,omitempty"`
	Explanation     string                 `json:"explanation,omitempty"`
	Revealed        *RevealedAnswer        `json:"revealed,omitempty"`
	RevealUsed      bool                   `json:"reveal_used"`
	AttemptsLeft    *int                   `json:"attempts_left,omitempty"`
	SessionComplete bool                   `json:"session_complete,omitempty"`
	SessionSummary  []model.MissedQuestion `json:"session_summary,omitempty"`
}

// SessionResponse is the session progress view.
type SessionResponse struct {
	ID           string                 `json:"id"`
	AssignmentID *string                `json:"assignment_id,omitempty"`
	SectionID    string                 `json:"section_id"`
	Difficulty   string                 `json:"difficulty"`
	TargetCount  int                    `json:"target_count"`
	Total        int                    `json:"total"`
	Correct      int                    `json:"correct"`
	Status       string                 `json:"status"`
	StartedAt    time.Time              `json:"started_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
	Summary      []model.MissedQuestion `json:"summary,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
