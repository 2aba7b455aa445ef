package service

import (
	"context"
)

// AssignmentConfig carries the per-run overrides an assignment (or frozen
// project) supplies: its own attempt cap and whether it permits revealing
// answers. MaxAttempts stays a string because it arrives from external
// configuration; the policy falls back to the mode default when it does not
// parse to a positive integer.
type AssignmentConfig struct {
	MaxAttempts string `mapstructure:"max_attempts"`
	AllowReveal bool   `mapstructure:"allow_reveal"`
}

// AssignmentSource resolves assignment overrides. The assignment catalog
// itself lives in the surrounding application; this engine only reads it.
type AssignmentSource interface {
	Get(ctx context.Context, assignmentID string) (AssignmentConfig, error)
}

// StaticAssignmentSource serves overrides from configuration. Unknown
// assignments get the zero config: mode-default attempts and no reveal.
type StaticAssignmentSource struct {
	configs map[string]AssignmentConfig
}

func NewStaticAssignmentSource(configs map[string]AssignmentConfig) *StaticAssignmentSource {
	if configs == nil {
		configs = make(map[string]AssignmentConfig)
	}
	return &StaticAssignmentSource{configs: configs}
}

func (s *StaticAssignmentSource) Get(_ context.Context, assignmentID string) (AssignmentConfig, error) {
	return s.configs[assignmentID], nil
}
