package validator

import (
	"encoding/json"
	"math"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// numericChecker: |submitted - expected| <= tolerance.
type numericChecker struct{}

func (numericChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || in.Value == nil {
		return malformed("expected {\"value\": <number>}")
	}
	if secret.Value == nil {
		return malformed("exercise has no expected numeric value")
	}
	tol := secret.Tolerance
	if tol <= 0 {
		tol = model.DefaultTolerance
	}
	return Result{OK: math.Abs(*in.Value-*secret.Value) <= tol}
}
