package dto

import "encoding/json"

// FetchExerciseRequest asks the engine to generate one exercise instance.
type FetchExerciseRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Module     string `json:"module"`
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Kind       string `json:"kind" binding:"omitempty,oneof=single_choice multi_choice numeric text_input voice_input drag_reorder matrix_input code_input"`
	Handler    string `json:"handler"`
	SessionID  string `json:"session_id"`
	Salt       string `json:"salt"`
	SeedPolicy string `json:"seed_policy" binding:"omitempty,oneof=global actor"`
	// AllowReveal controls the reveal grant embedded in the capability key.
	// Defaults to true; assignment-bound runs additionally need the
	// assignment's own reveal flag.
	AllowReveal *bool `json:"allow_reveal"`
}

// SubmitAnswerRequest scores an answer or requests a reveal. Exactly one of
// Answer and Reveal is meaningful per call.
type SubmitAnswerRequest struct {
	Key    string          `json:"key" binding:"required"`
	Answer json.RawMessage `json:"answer"`
	Reveal bool            `json:"reveal"`
}

// StartSessionRequest opens a practice session toward a target count of
// finalized exercises.
type StartSessionRequest struct {
	SectionID    string `json:"section_id" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required"`
	TargetCount  int    `json:"target_count" binding:"required,min=1,max=100"`
	AssignmentID string `json:"assignment_id"`
}
