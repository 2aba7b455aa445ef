package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// matrixChecker: parse each submitted cell (plain decimals and "a/b"
// fractions) and compare elementwise within the tolerance.
type matrixChecker struct{}

func (matrixChecker) Check(secret model.SecretPayload, answer json.RawMessage) Result {
	var in struct {
		Cells [][]string `json:"cells"`
	}
	if err := json.Unmarshal(answer, &in); err != nil || len(in.Cells) == 0 {
		return malformed("expected {\"cells\": [[\"...\"]]}")
	}
	if len(secret.Matrix) == 0 {
		return malformed("exercise has no expected matrix")
	}
	if len(in.Cells) != len(secret.Matrix) {
		return Result{OK: false, Detail: "wrong number of rows"}
	}

	tol := secret.Tolerance
	if tol <= 0 {
		tol = model.DefaultTolerance
	}
	for r, row := range secret.Matrix {
		if len(in.Cells[r]) != len(row) {
			return Result{OK: false, Detail: "wrong number of columns"}
		}
		for c, want := range row {
			got, err := parseCell(in.Cells[r][c])
			if err != nil {
				return Result{OK: false, Detail: fmt.Sprintf("cell (%d,%d): %v", r+1, c+1, err)}
			}
			if math.Abs(got-want) > tol {
				return Result{OK: false}
			}
		}
	}
	return Result{OK: true}
}

// parseCell accepts "3", "-0.5" and fraction syntax like "1/2" or "-3/4".
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("bad numerator %q", num)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("bad denominator %q", den)
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
