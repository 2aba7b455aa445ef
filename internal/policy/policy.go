// Package policy decides how many scored attempts an exercise allows and
// whether the expected answer may be revealed, from run mode, per-run
// overrides and process-wide configuration.
package policy

import (
	"strconv"
	"strings"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// Unlimited means no cap on scored attempts.
const Unlimited = 0

// Defaults are the configurable per-mode attempt caps. Zero or negative
// values fall back to the shipped defaults (assignment=3, session=3,
// practice=unlimited).
type Defaults struct {
	Assignment int
	Session    int
	Practice   int
}

// Policy computes attempt caps and reveal eligibility.
type Policy struct {
	defaults Defaults
}

func New(d Defaults) *Policy {
	if d.Assignment <= 0 {
		d.Assignment = 3
	}
	if d.Session <= 0 {
		d.Session = 3
	}
	if d.Practice < 0 {
		d.Practice = Unlimited
	}
	return &Policy{defaults: d}
}

// MaxAttempts returns the attempt cap for a run mode. A per-run override
// (e.g. an assignment's own max_attempts field) wins when it parses to a
// positive integer; anything else falls back to the mode default, never to
// zero attempts.
func (p *Policy) MaxAttempts(mode model.RunMode, override string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(override)); err == nil && v > 0 {
		return v
	}
	switch mode {
	case model.ModeAssignment:
		return p.defaults.Assignment
	case model.ModeSession:
		return p.defaults.Session
	default:
		return p.defaults.Practice
	}
}

// CanReveal gates the reveal path. Assignment-bound instances require both
// the assignment's flag and the capability key's flag; free practice only
// needs the key's flag.
func (p *Policy) CanReveal(isAssignment, allowRevealFromKey, allowRevealFromAssignment bool) bool {
	if isAssignment {
		return allowRevealFromKey && allowRevealFromAssignment
	}
	return allowRevealFromKey
}
