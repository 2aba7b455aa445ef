// Package memory is an in-memory implementation of the repository
// interfaces. It backs local runs without a database and the service tests,
// and it enforces the same finalize guard as the SQL store: answered_at is
// written at most once per instance, under one lock.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/repository"
)

type Store struct {
	mu        sync.Mutex
	now       func() time.Time
	instances map[string]*model.ExerciseInstance
	sessions  map[string]*model.PracticeSession
	attempts  []model.Attempt
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock allows deterministic timestamps in tests.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		now:       now,
		instances: make(map[string]*model.ExerciseInstance),
		sessions:  make(map[string]*model.PracticeSession),
	}
}

var (
	_ repository.AttemptRepository = (*Store)(nil)
	_ repository.ProgressStore     = (*Store)(nil)
)

// Instances exposes the store as an InstanceRepository.
func (s *Store) Instances() repository.InstanceRepository { return instanceView{s} }

// Sessions exposes the store as a SessionRepository.
func (s *Store) Sessions() repository.SessionRepository { return sessionView{s} }

type instanceView struct{ s *Store }

func (v instanceView) Create(_ context.Context, instance *model.ExerciseInstance) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cp := *instance
	v.s.instances[instance.ID] = &cp
	return nil
}

func (v instanceView) FindByID(_ context.Context, id string) (*model.ExerciseInstance, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	instance, ok := v.s.instances[id]
	if !ok {
		return nil, model.ErrInstanceNotFound
	}
	cp := *instance
	return &cp, nil
}

type sessionView struct{ s *Store }

func (v sessionView) Create(_ context.Context, session *model.PracticeSession) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cp := *session
	v.s.sessions[session.ID] = &cp
	return nil
}

func (v sessionView) FindByID(_ context.Context, id string) (*model.PracticeSession, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	session, ok := v.s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *Store) CountScored(_ context.Context, instanceID string, actor model.Actor) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.attempts {
		if a.InstanceID != instanceID || a.RevealUsed {
			continue
		}
		if actor.Matches(a.UserID, a.GuestID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) FindByInstance(_ context.Context, instanceID string) ([]model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attempt
	for _, a := range s.attempts {
		if a.InstanceID == instanceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) RecordAttempt(_ context.Context, attempt *model.Attempt, finalize bool) (repository.FinalizeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out repository.FinalizeOutcome
	s.attempts = append(s.attempts, *attempt)
	if !finalize {
		return out, nil
	}

	instance, ok := s.instances[attempt.InstanceID]
	if !ok {
		return out, model.ErrInstanceNotFound
	}
	if instance.AnsweredAt != nil {
		// Lost the finalize race: attempt logged, counters untouched.
		return out, nil
	}
	now := s.now()
	instance.AnsweredAt = &now
	out.Finalized = true

	if attempt.SessionID == nil {
		return out, nil
	}
	session, ok := s.sessions[*attempt.SessionID]
	if !ok {
		return out, model.ErrSessionNotFound
	}

	session.Total++
	if attempt.OK {
		session.Correct++
	}

	answered := 0
	for _, inst := range s.instances {
		if inst.SessionID != nil && *inst.SessionID == session.ID && inst.AnsweredAt != nil {
			answered++
		}
	}
	if answered >= session.TargetCount && session.Status != model.SessionCompleted {
		summary, err := s.missedSummaryLocked(session.ID)
		if err != nil {
			return out, err
		}
		session.Status = model.SessionCompleted
		session.CompletedAt = &now
		session.Summary = summary
		out.SessionCompleted = true
	}

	cp := *session
	out.Session = &cp
	return out, nil
}

func (s *Store) missedSummaryLocked(sessionID string) ([]byte, error) {
	missed := make([]model.MissedQuestion, 0)
	for _, a := range s.attempts {
		if a.SessionID == nil || *a.SessionID != sessionID || !a.Finalizing {
			continue
		}
		if a.OK && !a.RevealUsed {
			continue
		}
		instance, ok := s.instances[a.InstanceID]
		if !ok {
			continue
		}
		public, err := model.DecodePublic(instance.PublicPayload)
		if err != nil {
			return nil, err
		}
		missed = append(missed, model.MissedQuestion{
			InstanceID: instance.ID,
			Title:      public.Title,
			Prompt:     public.Prompt,
			Submitted:  string(a.AnswerPayload),
		})
	}
	return json.Marshal(missed)
}
