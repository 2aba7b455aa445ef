package model

// Kind identifies the answer contract of an exercise. Every kind has exactly
// one equivalence rule in the validator registry.
type Kind string

const (
	KindSingleChoice Kind = "single_choice"
	KindMultiChoice  Kind = "multi_choice"
	KindNumeric      Kind = "numeric"
	KindTextInput    Kind = "text_input"
	KindVoiceInput   Kind = "voice_input"
	KindDragReorder  Kind = "drag_reorder"
	KindMatrixInput  Kind = "matrix_input"
	KindCodeInput    Kind = "code_input"
)

// Valid reports whether k is one of the known exercise kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSingleChoice, KindMultiChoice, KindNumeric, KindTextInput,
		KindVoiceInput, KindDragReorder, KindMatrixInput, KindCodeInput:
		return true
	}
	return false
}

// RunMode describes which attempt/reveal defaults apply to a submission.
type RunMode string

const (
	ModeAssignment RunMode = "assignment"
	ModeSession    RunMode = "session"
	ModePractice   RunMode = "practice"
)

// SeedPolicy controls whether all actors see the same exercise for a given
// topic ("global", used for frozen assignments) or each actor gets an
// individually reproducible one ("actor").
type SeedPolicy string

const (
	SeedGlobal SeedPolicy = "global"
	SeedActor  SeedPolicy = "actor"
)
