package validator

import (
	"encoding/json"
	"strings"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// codeChecker compares the result of an externally executed program run
// against the stdout/exit-code rules carried in the secret payload. The run
// itself happens in a code-runner collaborator; this checker only applies
// the comparison rules it forwarded.
type codeChecker struct{}

func (codeChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		Stdout   string `json:"stdout"`
		ExitCode *int   `json:"exitCode"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || in.ExitCode == nil {
		return malformed("expected {\"stdout\": \"...\", \"exitCode\": <int>}")
	}
	if secret.Code == nil {
		return malformed("exercise has no code comparison rules")
	}

	if *in.ExitCode != secret.Code.ExitCode {
		return Result{OK: false, Detail: "exit code mismatch"}
	}
	got, want := in.Stdout, secret.Code.Stdout
	if secret.Code.TrimWhitespace {
		got = strings.TrimSpace(got)
		want = strings.TrimSpace(want)
	}
	if got != want {
		return Result{OK: false, Detail: "output mismatch"}
	}
	return Result{OK: true}
}
