package validator

import (
	"encoding/json"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// singleChoiceChecker: submitted choice id equals the expected id.
type singleChoiceChecker struct{}

func (singleChoiceChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		ChoiceID string `json:"choiceId"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || in.ChoiceID == "" {
		return malformed("expected {\"choiceId\": \"...\"}")
	}
	if len(secret.Expected) != 1 {
		return malformed("exercise has no single expected choice")
	}
	return Result{OK: in.ChoiceID == secret.Expected[0]}
}

// multiChoiceChecker: submitted id set equals the expected id set,
// order-independent and duplicate-insensitive.
type multiChoiceChecker struct{}

func (multiChoiceChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		ChoiceIDs []string `json:"choiceIds"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || len(in.ChoiceIDs) == 0 {
		return malformed("expected {\"choiceIds\": [\"...\"]}")
	}
	submitted := make(map[string]struct{}, len(in.ChoiceIDs))
	for _, id := range in.ChoiceIDs {
		submitted[id] = struct{}{}
	}
	if len(submitted) != len(secret.Expected) {
		return Result{OK: false}
	}
	for _, id := range secret.Expected {
		if _, ok := submitted[id]; !ok {
			return Result{OK: false}
		}
	}
	return Result{OK: true}
}
