package validator

import (
	"encoding/json"
	"strings"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// textChecker serves both text_input and voice_input: normalize both sides,
// then match exactly or by substring against any accepted answer.
type textChecker struct{}

func (textChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(answer, &in); err != nil {
		return malformed("expected {\"text\": \"...\"}")
	}
	submitted := normalizeText(in.Text)
	if submitted == "" {
		return Result{OK: false, Detail: "empty answer"}
	}

	includes := secret.Match == model.MatchIncludes
	for _, accepted := range secret.Expected {
		want := normalizeText(accepted)
		if want == "" {
			continue
		}
		if includes {
			if strings.Contains(submitted, want) {
				return Result{OK: true}
			}
		} else if submitted == want {
			return Result{OK: true}
		}
	}
	return Result{OK: false}
}
