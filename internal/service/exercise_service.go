package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openlearnlab/practice-engine/internal/dto"
	"github.com/openlearnlab/practice-engine/internal/generator"
	"github.com/openlearnlab/practice-engine/internal/metrics"
	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/repository"
	"github.com/openlearnlab/practice-engine/internal/token"
)

// ExerciseService generates exercise instances and issues the capability
// keys that authorize submitting answers for them.
type ExerciseService interface {
	Fetch(ctx context.Context, actor model.Actor, req dto.FetchExerciseRequest) (*dto.FetchExerciseResponse, error)
}

type exerciseService struct {
	generator    *generator.Generator
	codec        *token.Codec
	instanceRepo repository.InstanceRepository
	sessionRepo  repository.SessionRepository
}

func NewExerciseService(
	gen *generator.Generator,
	codec *token.Codec,
	instanceRepo repository.InstanceRepository,
	sessionRepo repository.SessionRepository,
) ExerciseService {
	return &exerciseService{
		generator:    gen,
		codec:        codec,
		instanceRepo: instanceRepo,
		sessionRepo:  sessionRepo,
	}
}

func (s *exerciseService) Fetch(ctx context.Context, actor model.Actor, req dto.FetchExerciseRequest) (*dto.FetchExerciseResponse, error) {
	var session *model.PracticeSession
	if req.SessionID != "" {
		var err error
		session, err = s.sessionRepo.FindByID(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if !actor.Matches(session.UserID, session.GuestID) {
			return nil, model.ErrActorMismatch
		}
	}

	seedPolicy := model.SeedPolicy(req.SeedPolicy)
	if seedPolicy == "" {
		seedPolicy = model.SeedActor
	}

	result, err := s.generator.Generate(generator.Request{
		Subject:    req.Subject,
		Module:     req.Module,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Kind:       model.Kind(req.Kind),
		Handler:    req.Handler,
		Salt:       req.Salt,
		SeedPolicy: seedPolicy,
		ActorKey:   actor.Key(),
	})
	if err != nil {
		return nil, err
	}

	publicRaw, err := model.EncodePublic(result.Public)
	if err != nil {
		return nil, fmt.Errorf("encoding public payload: %w", err)
	}
	secretRaw, err := model.EncodeSecret(result.Secret)
	if err != nil {
		return nil, fmt.Errorf("encoding secret payload: %w", err)
	}

	instance := &model.ExerciseInstance{
		ID:            uuid.NewString(),
		Subject:       req.Subject,
		Module:        req.Module,
		TopicID:       req.Topic,
		Kind:          result.Kind,
		Difficulty:    req.Difficulty,
		UserID:        actor.UserID,
		GuestID:       actor.GuestID,
		PublicPayload: publicRaw,
		SecretPayload: secretRaw,
	}
	if session != nil {
		instance.SessionID = &session.ID
	}
	if err := s.instanceRepo.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("persisting instance: %w", err)
	}

	allowReveal := true
	if req.AllowReveal != nil {
		allowReveal = *req.AllowReveal
	}
	payload := token.Payload{
		InstanceID:  instance.ID,
		SessionID:   req.SessionID,
		AllowReveal: allowReveal,
	}
	if actor.UserID != nil {
		payload.UserID = *actor.UserID
	}
	if actor.GuestID != nil {
		payload.GuestID = *actor.GuestID
	}
	key, expiresAt, err := s.codec.Issue(payload)
	if err != nil {
		return nil, fmt.Errorf("issuing capability key: %w", err)
	}

	metrics.ExercisesGenerated.WithLabelValues(req.Subject, string(result.Kind)).Inc()
	log.Info().
		Str("instanceID", instance.ID).
		Str("topic", req.Topic).
		Str("kind", string(result.Kind)).
		Str("seedPolicy", string(seedPolicy)).
		Msg("Generated exercise instance")

	return &dto.FetchExerciseResponse{
		InstanceID:    instance.ID,
		PublicPayload: result.Public,
		Key:           key,
		ExpiresAt:     expiresAt,
	}, nil
}
