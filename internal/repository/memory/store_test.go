package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/openlearnlab/practice-engine/internal/model"
)

var frozen = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return NewStoreWithClock(func() time.Time { return frozen })
}

func strptr(s string) *string { return &s }

func seedInstance(t *testing.T, s *Store, id string, sessionID *string) {
	t.Helper()
	public, err := model.EncodePublic(model.PublicPayload{
		Title:  "Add",
		Prompt: "What is 2 + 2?",
		Kind:   model.KindNumeric,
	})
	require.NoError(t, err)
	secret, err := model.EncodeSecret(model.SecretPayload{Value: f64(4), Tolerance: 1e-9})
	require.NoError(t, err)

	require.NoError(t, s.Instances().Create(context.Background(), &model.ExerciseInstance{
		ID:            id,
		Subject:       "math",
		TopicID:       "sums",
		Kind:          model.KindNumeric,
		Difficulty:    "easy",
		SessionID:     sessionID,
		GuestID:       strptr("guest-1"),
		PublicPayload: public,
		SecretPayload: secret,
	}))
}

func seedSession(t *testing.T, s *Store, id string, target int) {
	t.Helper()
	require.NoError(t, s.Sessions().Create(context.Background(), &model.PracticeSession{
		ID:          id,
		SectionID:   "arithmetic",
		Difficulty:  "easy",
		TargetCount: target,
		Status:      model.SessionActive,
		GuestID:     strptr("guest-1"),
		StartedAt:   frozen,
	}))
}

func f64(v float64) *float64 { return &v }

func TestRecordAttemptFinalizesExactlyOnce(t *testing.T) {
	store := newTestStore()
	seedSession(t, store, "sess-1", 1)
	seedInstance(t, store, "inst-1", strptr("sess-1"))

	const workers = 16
	var finalized, completed int64

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			attempt := &model.Attempt{
				ID:         fmt.Sprintf("att-%d", i),
				InstanceID: "inst-1",
				SessionID:  strptr("sess-1"),
				GuestID:    strptr("guest-1"),
				OK:         true,
				Finalizing: true,
			}
			outcome, err := store.RecordAttempt(context.Background(), attempt, true)
			if err != nil {
				return err
			}
			if outcome.Finalized {
				atomic.AddInt64(&finalized, 1)
			}
			if outcome.SessionCompleted {
				atomic.AddInt64(&completed, 1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, finalized, "only one racer may finalize the instance")
	assert.EqualValues(t, 1, completed, "completion must be reported to exactly one caller")

	session, err := store.Sessions().FindByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Total)
	assert.Equal(t, 1, session.Correct)
	assert.Equal(t, model.SessionCompleted, session.Status)
	require.NotNil(t, session.CompletedAt)

	// Every attempt is still logged, losers included.
	attempts, err := store.FindByInstance(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Len(t, attempts, workers)
}

func TestRecordAttemptNonFinalizing(t *testing.T) {
	store := newTestStore()
	seedSession(t, store, "sess-1", 1)
	seedInstance(t, store, "inst-1", strptr("sess-1"))

	attempt := &model.Attempt{ID: "att-1", InstanceID: "inst-1", SessionID: strptr("sess-1"), GuestID: strptr("guest-1")}
	outcome, err := store.RecordAttempt(context.Background(), attempt, false)
	require.NoError(t, err)

	assert.False(t, outcome.Finalized)
	assert.False(t, outcome.SessionCompleted)

	session, err := store.Sessions().FindByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 0, session.Total)
	assert.Equal(t, model.SessionActive, session.Status)

	instance, err := store.Instances().FindByID(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Nil(t, instance.AnsweredAt)
}

func TestSessionCompletionUsesRecount(t *testing.T) {
	store := newTestStore()
	seedSession(t, store, "sess-1", 2)
	seedInstance(t, store, "inst-1", strptr("sess-1"))
	seedInstance(t, store, "inst-2", strptr("sess-1"))

	out1, err := store.RecordAttempt(context.Background(), &model.Attempt{
		ID: "att-1", InstanceID: "inst-1", SessionID: strptr("sess-1"), GuestID: strptr("guest-1"),
		OK: false, Finalizing: true,
		AnswerPayload: json.RawMessage(`{"value":5}`),
	}, true)
	require.NoError(t, err)
	assert.True(t, out1.Finalized)
	assert.False(t, out1.SessionCompleted, "one of two answered must not complete")

	out2, err := store.RecordAttempt(context.Background(), &model.Attempt{
		ID: "att-2", InstanceID: "inst-2", SessionID: strptr("sess-1"), GuestID: strptr("guest-1"),
		OK: true, Finalizing: true,
	}, true)
	require.NoError(t, err)
	assert.True(t, out2.Finalized)
	assert.True(t, out2.SessionCompleted)

	require.NotNil(t, out2.Session)
	assert.Equal(t, 2, out2.Session.Total)
	assert.Equal(t, 1, out2.Session.Correct)

	var missed []model.MissedQuestion
	require.NoError(t, json.Unmarshal(out2.Session.Summary, &missed))
	require.Len(t, missed, 1)
	assert.Equal(t, "inst-1", missed[0].InstanceID)
	assert.Equal(t, "What is 2 + 2?", missed[0].Prompt)
	assert.Equal(t, `{"value":5}`, missed[0].Submitted)
	// The summary never carries the expected answer.
	assert.NotContains(t, missed[0].Submitted, "4")
}

func TestRepeatFinalizeLeavesCountersAlone(t *testing.T) {
	store := newTestStore()
	seedSession(t, store, "sess-1", 3)
	seedInstance(t, store, "inst-1", strptr("sess-1"))

	_, err := store.RecordAttempt(context.Background(), &model.Attempt{
		ID: "att-1", InstanceID: "inst-1", SessionID: strptr("sess-1"), GuestID: strptr("guest-1"),
		OK: true, Finalizing: true,
	}, true)
	require.NoError(t, err)

	out, err := store.RecordAttempt(context.Background(), &model.Attempt{
		ID: "att-2", InstanceID: "inst-1", SessionID: strptr("sess-1"), GuestID: strptr("guest-1"),
		OK: true, Finalizing: true,
	}, true)
	require.NoError(t, err)
	assert.False(t, out.Finalized)

	session, err := store.Sessions().FindByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Total)
}

func TestCountScored(t *testing.T) {
	store := newTestStore()
	seedInstance(t, store, "inst-1", nil)

	actor := model.Actor{GuestID: strptr("guest-1")}
	other := model.Actor{GuestID: strptr("guest-2")}

	for i, a := range []model.Attempt{
		{InstanceID: "inst-1", GuestID: strptr("guest-1"), OK: false},
		{InstanceID: "inst-1", GuestID: strptr("guest-1"), OK: true},
		{InstanceID: "inst-1", GuestID: strptr("guest-1"), RevealUsed: true},
		{InstanceID: "inst-1", GuestID: strptr("guest-2"), OK: false},
	} {
		a.ID = fmt.Sprintf("att-%d", i)
		_, err := store.RecordAttempt(context.Background(), &a, false)
		require.NoError(t, err)
	}

	count, err := store.CountScored(context.Background(), "inst-1", actor)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "reveals and other actors are excluded")

	count, err = store.CountScored(context.Background(), "inst-1", other)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
