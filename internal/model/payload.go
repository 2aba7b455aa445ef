package model

import "encoding/json"

// Choice is one selectable option shown to the client. For drag_reorder
// kinds the choices are the items to be ordered.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MatrixShape tells the client how many cells to render for matrix_input.
type MatrixShape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// PublicPayload is everything a client needs to render and answer an
// exercise. It never carries the expected answer.
type PublicPayload struct {
	Title       string       `json:"title,omitempty"`
	Prompt      string       `json:"prompt"`
	Kind        Kind         `json:"kind"`
	Choices     []Choice     `json:"choices,omitempty"`
	Matrix      *MatrixShape `json:"matrix,omitempty"`
	StarterCode string       `json:"starterCode,omitempty"`
}

// CodeRules describes how an externally executed program run is compared.
// Execution itself happens in a code-runner collaborator; the validator only
// compares the reported run result against these rules.
type CodeRules struct {
	Stdout         string `json:"stdout"`
	ExitCode       int    `json:"exitCode"`
	TrimWhitespace bool   `json:"trimWhitespace,omitempty"`
}

// SecretPayload holds the hidden expected answer and explanation. It leaves
// the server only through the policy-gated reveal path.
type SecretPayload struct {
	// Expected carries choice ids (single/multi), the required ordered id
	// sequence (drag_reorder), or the accepted answer strings (text/voice).
	Expected []string `json:"expected,omitempty"`
	// Value and Tolerance apply to the numeric kind.
	Value     *float64 `json:"value,omitempty"`
	Tolerance float64  `json:"tolerance,omitempty"`
	// Match selects exact or includes comparison for text/voice answers.
	Match string `json:"match,omitempty"`
	// Matrix holds the expected cell values for matrix_input.
	Matrix [][]float64 `json:"matrix,omitempty"`
	// Code holds the stdout/exit-code comparison rules for code_input.
	Code *CodeRules `json:"code,omitempty"`

	Explanation string `json:"explanation,omitempty"`
}

const (
	MatchExact    = "exact"
	MatchIncludes = "includes"
)

// DefaultTolerance is the numeric comparison epsilon used when a pool entry
// does not specify one.
const DefaultTolerance = 1e-9

// EncodePublic marshals p into the canonical byte form persisted on the
// instance row. Struct marshalling keeps field order fixed, which is what
// makes identical seeds produce byte-identical payloads.
func EncodePublic(p PublicPayload) ([]byte, error) { return json.Marshal(p) }

// EncodeSecret marshals s into the canonical byte form persisted on the
// instance row.
func EncodeSecret(s SecretPayload) ([]byte, error) { return json.Marshal(s) }

// DecodeSecret parses a persisted secret payload.
func DecodeSecret(raw []byte) (SecretPayload, error) {
	var s SecretPayload
	err := json.Unmarshal(raw, &s)
	return s, err
}

// DecodePublic parses a persisted public payload.
func DecodePublic(raw []byte) (PublicPayload, error) {
	var p PublicPayload
	err := json.Unmarshal(raw, &p)
	return p, err
}
