package training

import (
	"testing"

	"fitvalle/coaching-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestSession(baseline []domain.SessionExercise) *ActiveSession {
	return NewActiveSession(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), baseline)
}

func TestActiveSession_BaselineSurvivesEdits(t *testing.T) {
	exerciseID := primitive.NewObjectID()
	session := newTestSession([]domain.SessionExercise{record(exerciseID, 3, 10, 50, false)})

	session.Edits().Publish(record(exerciseID, 3, 10, 90, false))
	current := session.Reconcile()

	require.Len(t, current, 1)
	assert.Equal(t, 90, current[0].Weight)

	baseline := session.Baseline()
	require.Len(t, baseline, 1)
	assert.Equal(t, 50, baseline[0].Weight, "the comparison point must not move")
}

func TestActiveSession_ReconcileDrainsBothSources(t *testing.T) {
	storeID := primitive.NewObjectID()
	handbackID := primitive.NewObjectID()
	session := newTestSession([]domain.SessionExercise{
		record(storeID, 3, 10, 50, false),
		record(handbackID, 3, 10, 50, false),
	})

	session.Edits().Publish(record(storeID, 3, 10, 60, false))
	session.Handback().Write(record(handbackID, 5, 10, 50, false))

	current := session.Reconcile()
	require.Len(t, current, 2)
	assert.Equal(t, 60, current[0].Weight)
	assert.Equal(t, 5, current[1].Sets)

	// Both sources are consumed: a second pass changes nothing.
	assert.Equal(t, current, session.Reconcile())
	assert.Empty(t, session.Edits().Snapshot())
	_, pending := session.Handback().ReadAndClear()
	assert.False(t, pending)
}

func TestActiveSession_BothSourcesSameExerciseIsDeterministic(t *testing.T) {
	exerciseID := primitive.NewObjectID()
	session := newTestSession([]domain.SessionExercise{record(exerciseID, 3, 10, 50, false)})

	session.Edits().Publish(record(exerciseID, 3, 10, 60, false))
	session.Handback().Write(record(exerciseID, 3, 10, 80, false))

	current := session.Reconcile()
	require.Len(t, current, 1)
	assert.Equal(t, 80, current[0].Weight, "the hand-back value is the most recently authored one")
}

func TestActiveSession_SetCompleted(t *testing.T) {
	exerciseID := primitive.NewObjectID()
	session := newTestSession([]domain.SessionExercise{record(exerciseID, 3, 10, 50, false)})

	require.True(t, session.SetCompleted(exerciseID, true))
	current := session.Reconcile()
	assert.True(t, current[0].Completed)

	assert.False(t, session.SetCompleted(primitive.NewObjectID(), true))
}

func TestActiveSession_CheckboxSurvivesLaterEdit(t *testing.T) {
	exerciseID := primitive.NewObjectID()
	session := newTestSession([]domain.SessionExercise{record(exerciseID, 3, 10, 50, false)})

	require.True(t, session.SetCompleted(exerciseID, true))
	session.Edits().Publish(record(exerciseID, 3, 10, 70, false))

	current := session.Reconcile()
	require.Len(t, current, 1)
	assert.True(t, current[0].Completed)
	assert.Equal(t, 70, current[0].Weight)
}

func TestActiveSession_EmptyBaseline(t *testing.T) {
	session := newTestSession(nil)
	assert.Empty(t, session.Reconcile())
	assert.Empty(t, session.Baseline())
	assert.False(t, session.SetCompleted(primitive.NewObjectID(), true))
}

func TestNewTemplateSession_MarksOriginAndRoutineID(t *testing.T) {
	customerID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()

	session := NewTemplateSession(customerID, templateID, sessionID, []domain.SessionExercise{
		record(primitive.NewObjectID(), 3, 10, 50, false),
	})
	assert.True(t, session.FromTemplate())
	assert.Equal(t, templateID, session.RoutineID)
	assert.Equal(t, sessionID, session.SessionID)

	plain := newTestSession(nil)
	assert.False(t, plain.FromTemplate())
}
