package validator

import (
	"encoding/json"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// reorderChecker: the submitted id sequence must equal the expected sequence
// exactly, both in length and position.
type reorderChecker struct{}

func (reorderChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		Order []string `json:"order"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || len(in.Order) == 0 {
		return malformed("expected {\"order\": [\"...\"]}")
	}
	if len(in.Order) != len(secret.Expected) {
		return Result{OK: false}
	}
	for i, id := range in.Order {
		if id != secret.Expected[i] {
			return Result{OK: false}
		}
	}
	return Result{OK: true}
}
