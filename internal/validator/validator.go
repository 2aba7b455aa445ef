// Package validator holds the per-kind equivalence rules between a submitted
// answer and the hidden expected value. Every checker is pure: no I/O, no
// randomness, no clock, so each kind is unit-testable in isolation.
package validator

import (
	"encoding/json"
	"fmt"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// Result is the outcome of one validation. A malformed submission for the
// given kind is ok=false with a detail, never a server error.
type Result struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Checker implements one kind's equivalence rule.
type Checker interface {
	Check(secret model.SecretPayload, answer json.RawMessage) Result
}

// Registry dispatches validation by exercise kind. Kinds are registered
// explicitly; an unknown kind is an error, never a silent default.
type Registry struct {
	checkers map[model.Kind]Checker
}

// NewRegistry builds the registry with every built-in kind wired.
func NewRegistry() *Registry {
	r := &Registry{checkers: make(map[model.Kind]Checker)}
	r.Register(model.KindSingleChoice, singleChoiceChecker{})
	r.Register(model.KindMultiChoice, multiChoiceChecker{})
	r.Register(model.KindNumeric, numericChecker{})
	r.Register(model.KindTextInput, textChecker{})
	r.Register(model.KindVoiceInput, textChecker{})
	r.Register(model.KindDragReorder, reorderChecker{})
	r.Register(model.KindMatrixInput, matrixChecker{})
	r.Register(model.KindCodeInput, codeChecker{})
	return r
}

// Register adds or replaces the checker for a kind.
func (r *Registry) Register(kind model.Kind, c Checker) {
	r.checkers[kind] = c
}

// Validate runs the kind's checker against the submitted answer.
func (r *Registry) Validate(kind model.Kind, secret model.SecretPayload, answer json.RawMessage) (Result, error) {
	c, ok := r.checkers[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}
	return c.Check(secret, answer), nil
}

func malformed(why string) Result {
	return Result{OK: false, Detail: why}
}
