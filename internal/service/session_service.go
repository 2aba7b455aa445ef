package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/openlearnlab/practice-engine/internal/dto"
	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/repository"
)

// SessionService opens practice sessions and serves their progress view.
type SessionService interface {
	Start(ctx context.Context, actor model.Actor, req dto.StartSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, actor model.Actor, sessionID string) (*dto.SessionResponse, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) Start(ctx context.Context, actor model.Actor, req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	session := &model.PracticeSession{
		ID:          uuid.NewString(),
		SectionID:   req.SectionID,
		Difficulty:  req.Difficulty,
		TargetCount: req.TargetCount,
		Status:      model.SessionActive,
		UserID:      actor.UserID,
		GuestID:     actor.GuestID,
		StartedAt:   time.Now(),
	}
	if req.AssignmentID != "" {
		session.AssignmentID = &req.AssignmentID
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Info().
		Str("sessionID", session.ID).
		Str("sectionID", req.SectionID).
		Int("targetCount", req.TargetCount).
		Msg("Started practice session")
	return toSessionResponse(session)
}

func (s *sessionService) Get(ctx context.Context, actor model.Actor, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !actor.Matches(session.UserID, session.GuestID) {
		return nil, model.ErrActorMismatch
	}
	return toSessionResponse(session)
}

func toSessionResponse(session *model.PracticeSession) (*dto.SessionResponse, error) {
	var resp dto.SessionResponse
	if err := copier.Copy(&resp, session); err != nil {
		return nil, err
	}
	if len(session.Summary) > 0 {
		if err := json.Unmarshal(session.Summary, &resp.Summary); err != nil {
			log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to decode stored session summary")
		}
	}
	return &resp, nil
}
