package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/openlearnlab/practice-engine/internal/model"
)

type gormProgressStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProgressStore(db *gorm.DB) ProgressStore {
	return &gormProgressStore{db: db, now: time.Now}
}

// RecordAttempt runs the finalize algorithm as one transaction. The
// conditional UPDATE on answered_at is the concurrency guard: under racing
// finalizes for the same instance only one statement reports one affected
// row, and only that caller touches the session counters.
func (s *gormProgressStore) RecordAttempt(ctx context.Context, attempt *model.Attempt, finalize bool) (FinalizeOutcome, error) {
	var out FinalizeOutcome

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if !finalize {
			return nil
		}

		now := s.now()
		res := tx.Model(&model.ExerciseInstance{}).
			Where("id = ? AND answered_at IS NULL", attempt.InstanceID).
			Update("answered_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			// Another submission finalized this instance first; the
			// attempt row stays, counters are untouched.
			return nil
		}
		out.Finalized = true

		if attempt.SessionID == nil {
			return nil
		}
		return s.advanceSession(tx, attempt, now, &out)
	})
	if err != nil {
		return FinalizeOutcome{}, err
	}
	return out, nil
}

func (s *gormProgressStore) advanceSession(tx *gorm.DB, attempt *model.Attempt, now time.Time, out *FinalizeOutcome) error {
	sessionID := *attempt.SessionID

	updates := map[string]interface{}{"total": gorm.Expr("total + 1")}
	if attempt.OK {
		updates["correct"] = gorm.Expr("correct + 1")
	}
	if err := tx.Model(&model.PracticeSession{}).Where("id = ?", sessionID).Updates(updates).Error; err != nil {
		return err
	}

	// The completion check recounts finalized instances instead of trusting
	// the running counter, so counter drift can never complete a session
	// early or strand it.
	var answered int64
	if err := tx.Model(&model.ExerciseInstance{}).
		Where("session_id = ? AND answered_at IS NOT NULL", sessionID).
		Count(&answered).Error; err != nil {
		return err
	}

	var session model.PracticeSession
	if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
		return err
	}

	if int(answered) >= session.TargetCount && session.Status != model.SessionCompleted {
		summary, err := missedSummary(tx, sessionID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.PracticeSession{}).Where("id = ?", sessionID).Updates(map[string]interface{}{
			"status":       model.SessionCompleted,
			"completed_at": now,
			"summary":      summary,
		}).Error; err != nil {
			return err
		}
		session.Status = model.SessionCompleted
		session.CompletedAt = &now
		session.Summary = summary
		out.SessionCompleted = true
	}

	out.Session = &session
	return nil
}

// missedSummary collects the questions the learner did not solve on their
// own: finalizing attempts that were wrong or used reveal. It carries titles,
// prompts and the learner's own submission, never the expected value.
func missedSummary(tx *gorm.DB, sessionID string) ([]byte, error) {
	var attempts []model.Attempt
	if err := tx.
		Where("session_id = ? AND finalizing = ? AND (ok = ? OR reveal_used = ?)", sessionID, true, false, true).
		Order("created_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	missed := make([]model.MissedQuestion, 0, len(attempts))
	for _, a := range attempts {
		var instance model.ExerciseInstance
		if err := tx.First(&instance, "id = ?", a.InstanceID).Error; err != nil {
			return nil, err
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
