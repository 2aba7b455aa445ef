// Package repository persists exercise instances, attempts and practice
// sessions. Interfaces are satisfied by the gorm/postgres implementations and
// by an in-memory store used for local runs and tests.
package repository

import (
	"context"

	"github.com/openlearnlab/practice-engine/internal/model"
)

type InstanceRepository interface {
	Create(ctx context.Context, instance *model.ExerciseInstance) error
	FindByID(ctx context.Context, id string) (*model.ExerciseInstance, error)
}

type AttemptRepository interface {
	// CountScored returns the number of prior non-reveal attempts an actor
	// has logged against an instance. The caller uses it to enforce the
	// attempt cap before validating a new submission.
	CountScored(ctx context.Context, instanceID string, actor model.Actor) (int, error)
	FindByInstance(ctx context.Context, instanceID string) ([]model.Attempt, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.PracticeSession) error
	FindByID(ctx context.Context, id string) (*model.PracticeSession, error)
}

// FinalizeOutcome reports what one RecordAttempt call actually changed.
// Under concurrent finalizes for the same instance only one call observes
// Finalized=true; the others logged their attempt and nothing else.
type FinalizeOutcome struct {
	Finalized        bool
	SessionCompleted bool
	// Session is a fresh post-transaction snapshot when the attempt was
	// session-bound, nil otherwise.
	Session *model.PracticeSession
}

// ProgressStore runs the one atomic transaction of the engine: insert the
// attempt row, conditionally finalize the instance, and advance session
// counters only when this call won the finalize guard.
type ProgressStore interface {
	RecordAttempt(ctx context.Context, attempt *model.Attempt, finalize bool) (FinalizeOutcome, error)
}
