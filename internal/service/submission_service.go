package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openlearnlab/practice-engine/internal/dto"
	"github.com/openlearnlab/practice-engine/internal/metrics"
	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/policy"
	"github.com/openlearnlab/practice-engine/internal/repository"
	"github.com/openlearnlab/practice-engine/internal/token"
	"github.com/openlearnlab/practice-engine/internal/validator"
)

// SubmissionService resolves a capability key, scores or reveals an answer
// and advances session progress exactly once per instance.
type SubmissionService interface {
	Submit(ctx context.Context, actor model.Actor, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type submissionService struct {
	codec        *token.Codec
	registry     *validator.Registry
	policy       *policy.Policy
	assignments  AssignmentSource
	instanceRepo repository.InstanceRepository
	attemptRepo  repository.AttemptRepository
	sessionRepo  repository.SessionRepository
	progress     repository.ProgressStore
}

func NewSubmissionService(
	codec *token.Codec,
	registry *validator.Registry,
	pol *policy.Policy,
	assignments AssignmentSource,
	instanceRepo repository.InstanceRepository,
	attemptRepo repository.AttemptRepository,
	sessionRepo repository.SessionRepository,
	progress repository.ProgressStore,
) SubmissionService {
	return &submissionService{
		codec:        codec,
		registry:     registry,
		policy:       pol,
		assignments:  assignments,
		instanceRepo: instanceRepo,
		attemptRepo:  attemptRepo,
		sessionRepo:  sessionRepo,
		progress:     progress,
	}
}

func (s *submissionService) Submit(ctx context.Context, actor model.Actor, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	key, err := s.codec.Verify(req.Key)
	if err != nil {
		return nil, err
	}
	if !actor.Matches(key.Actor().UserID, key.Actor().GuestID) {
		log.Warn().Str("instanceID", key.InstanceID).Msg("Capability key presented by a different actor")
		return nil, model.ErrActorMismatch
	}

	instance, err := s.instanceRepo.FindByID(ctx, key.InstanceID)
	if err != nil {
		return nil, err
	}
	secret, err := model.DecodeSecret(instance.SecretPayload)
	if err != nil {
		return nil, fmt.Errorf("decoding secret payload of instance %s: %w", instance.ID, err)
	}

	mode, assignment, err := s.resolveRun(ctx, instance)
	if err != nil {
		return nil, err
	}

	if req.Reveal {
		return s.reveal(ctx, actor, instance, secret, key, mode, assignment)
	}
	return s.score(ctx, actor, instance, secret, req.Answer, mode, assignment)
}

// resolveRun determines the run mode and, for assignment-bound sessions, the
// assignment's overrides.
func (s *submissionService) resolveRun(ctx context.Context, instance *model.ExerciseInstance) (model.RunMode, AssignmentConfig, error) {
	if instance.SessionID == nil {
		return model.ModePractice, AssignmentConfig{}, nil
	}
	session, err := s.sessionRepo.FindByID(ctx, *instance.SessionID)
	if err != nil {
		return "", AssignmentConfig{}, err
	}
	if session.AssignmentID == nil {
		return model.ModeSession, AssignmentConfig{}, nil
	}
	cfg, err := s.assignments.Get(ctx, *session.AssignmentID)
	if err != nil {
		return "", AssignmentConfig{}, fmt.Errorf("resolving assignment %s: %w", *session.AssignmentID, err)
	}
	return model.ModeAssignment, cfg, nil
}

func (s *submissionService) reveal(ctx context.Context, actor model.Actor, instance *model.ExerciseInstance, secret model.SecretPayload, key token.Payload, mode model.RunMode, assignment AssignmentConfig) (*dto.SubmitAnswerResponse, error) {
	isAssignment := mode == model.ModeAssignment
	if !s.policy.CanReveal(isAssignment, key.AllowReveal, assignment.AllowReveal) {
		return nil, model.ErrRevealNotAllowed
	}

	attempt := &model.Attempt{
		ID:         uuid.NewString(),
		InstanceID: instance.ID,
		SessionID:  instance.SessionID,
		UserID:     actor.UserID,
		GuestID:    actor.GuestID,
		OK:         false,
		RevealUsed: true,
		Finalizing: true,
	}
	outcome, err := s.progress.RecordAttempt(ctx, attempt, true)
	if err != nil {
		return nil, fmt.Errorf("recording reveal attempt: %w", err)
	}

	metrics.Reveals.Inc()
	resp := &dto.SubmitAnswerResponse{
		OK:          false,
		RevealUsed:  true,
		Explanation: secret.Explanation,
		Revealed: &dto.RevealedAnswer{
			Expected:  secret.Expected,
			Value:     secret.Value,
			Matrix:    secret.Matrix,
			CodeRules: secret.Code,
		},
	}
	s.applyOutcome(resp, outcome)
	return resp, nil
}

func (s *submissionService) score(ctx context.Context, actor model.Actor, instance *model.ExerciseInstance, secret model.SecretPayload, answer json.RawMessage, mode model.RunMode, assignment AssignmentConfig) (*dto.SubmitAnswerResponse, error) {
	if len(answer) == 0 {
		answer = json.RawMessage("{}")
	}

	max := s.policy.MaxAttempts(mode, assignment.MaxAttempts)
	prior := 0
	if max != policy.Unlimited {
		var err error
		prior, err = s.attemptRepo.CountScored(ctx, instance.ID, actor)
		if err != nil {
			return nil, fmt.Errorf("counting prior attempts: %w", err)
		}
		if prior >= max {
			return nil, model.ErrAttemptsExhausted
		}
	}

	result, err := s.registry.Validate(instance.Kind, secret, answer)
	if err != nil {
		return nil, err
	}

	// The instance finalizes on the first correct answer, or when this
	// scored attempt used up the cap.
	finalize := result.OK || (max != policy.Unlimited && prior+1 >= max)

	attempt := &model.Attempt{
		ID:            uuid.NewString(),
		InstanceID:    instance.ID,
		SessionID:     instance.SessionID,
		UserID:        actor.UserID,
		GuestID:       actor.GuestID,
		AnswerPayload: answer,
		OK:            result.OK,
		RevealUsed:    false,
		Finalizing:    finalize,
	}
	outcome, err := s.progress.RecordAttempt(ctx, attempt, finalize)
	if err != nil {
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	if result.OK {
		metrics.AttemptsSubmitted.WithLabelValues("correct").Inc()
	} else {
		metrics.AttemptsSubmitted.WithLabelValues("incorrect").Inc()
	}

	resp := &dto.SubmitAnswerResponse{
		OK:      result.OK,
		Message: result.Detail,
	}
	if finalize {
		resp.Explanation = secret.Explanation
	}
	if max != policy.Unlimited {
		left := max - prior - 1
		if left < 0 {
			left = 0
		}
		resp.AttemptsLeft = &left
	}
	s.applyOutcome(resp, outcome)
	return resp, nil
}

func (s *submissionService) applyOutcome(resp *dto.SubmitAnswerResponse, outcome repository.FinalizeOutcome) {
	if !outcome.SessionCompleted {
		return
	}
	metrics.SessionsCompleted.Inc()
	resp.SessionComplete = true
	if outcome.Session != nil && len(outcome.Session.Summary) > 0 {
		var missed []model.MissedQuestion
		if err := json.Unmarshal(outcome.Session.Summary, &missed); err != nil {
			log.Error().Err(err).Str("sessionID", outcome.Session.ID).Msg("Failed to decode session summary")
		} else {
			resp.SessionSummary = missed
		}
	}
}
