package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeSessionExerciseRepo struct {
	bySession map[primitive.ObjectID][]domain.SessionExercise
	loadErr   error
}

func (f *fakeSessionExerciseRepo) GetBySessionID(_ context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.bySession[sessionID], nil
}

func (f *fakeSessionExerciseRepo) ReplaceForSession(_ context.Context, sessionID primitive.ObjectID, exercises []domain.SessionExercise) error {
	if f.bySession == nil {
		f.bySession = map[primitive.ObjectID][]domain.SessionExercise{}
	}
	f.bySession[sessionID] = exercises
	return nil
}

type fakeExerciseRepo struct {
	byID map[primitive.ObjectID]domain.Exercise
}

func (f *fakeExerciseRepo) Create(_ context.Context, _ *domain.Exercise) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (f *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if e, ok := f.byID[id]; ok {
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	return nil, nil
}

func (f *fakeExerciseRepo) GetAllTypes(_ context.Context) ([]domain.ExerciseType, error) {
	return nil, nil
}

func (f *fakeExerciseRepo) GetAllMuscles(_ context.Context) ([]domain.TargetMuscle, error) {
	return nil, nil
}

type fakeCompletedSessionRepo struct {
	saved     []domain.CompletedSession
	createErr error
}

func (f *fakeCompletedSessionRepo) Create(_ context.Context, session *domain.CompletedSession) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	stored := *session
	stored.ID = id
	f.saved = append(f.saved, stored)
	return id, nil
}

func (f *fakeCompletedSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.CompletedSession, error) {
	for _, s := range f.saved {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompletedSessionRepo) GetByCustomerID(_ context.Context, customerID primitive.ObjectID) ([]domain.CompletedSession, error) {
	var out []domain.CompletedSession
	for _, s := range f.saved {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeProgressRepo struct {
	pointers map[primitive.ObjectID]primitive.ObjectID
	setErr   error
}

func (f *fakeProgressRepo) SetLastSessionTrained(_ context.Context, customerID, sessionID primitive.ObjectID) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.pointers == nil {
		f.pointers = map[primitive.ObjectID]primitive.ObjectID{}
	}
	f.pointers[customerID] = sessionID
	return nil
}

func (f *fakeProgressRepo) GetLastSessionTrained(_ context.Context, customerID primitive.ObjectID) (primitive.ObjectID, error) {
	if sessionID, ok := f.pointers[customerID]; ok {
		return sessionID, nil
	}
	return primitive.NilObjectID, repository.ErrNotFound
}

// --- Test fixture ---

type trainingFixture struct {
	service      TrainingService
	sessionRepo  *fakeSessionExerciseRepo
	templates    *fakeTemplateRepo
	completed    *fakeCompletedSessionRepo
	progress     *fakeProgressRepo
	customerID   primitive.ObjectID
	sessionID    primitive.ObjectID
	routineID    primitive.ObjectID
	benchPressID primitive.ObjectID
	squatID      primitive.ObjectID
}

func newTrainingFixture(t *testing.T) *trainingFixture {
	t.Helper()

	f := &trainingFixture{
		customerID:   primitive.NewObjectID(),
		sessionID:    primitive.NewObjectID(),
		routineID:    primitive.NewObjectID(),
		benchPressID: primitive.NewObjectID(),
		squatID:      primitive.NewObjectID(),
	}
	f.sessionRepo = &fakeSessionExerciseRepo{
		bySession: map[primitive.ObjectID][]domain.SessionExercise{
			f.sessionID: {
				{ExerciseID: f.benchPressID, Sets: 3, Reps: 10, Weight: 50},
				{ExerciseID: f.squatID, Sets: 4, Reps: 8, Weight: 80},
			},
		},
	}
	exerciseRepo := &fakeExerciseRepo{
		byID: map[primitive.ObjectID]domain.Exercise{
			f.benchPressID: {ID: f.benchPressID, Name: "Bench Press"},
			f.squatID:      {ID: f.squatID, Name: "Squat"},
		},
	}
	f.templates = &fakeTemplateRepo{}
	f.completed = &fakeCompletedSessionRepo{}
	f.progress = &fakeProgressRepo{}
	f.service = NewTrainingService(f.sessionRepo, f.templates, exerciseRepo, f.completed, f.progress)
	return f
}

// addTemplate stores a two-exercise template owned by the fixture customer.
func (f *trainingFixture) addTemplate(t *testing.T) primitive.ObjectID {
	t.Helper()
	templateID, err := f.templates.Create(context.Background(), &domain.Template{
		OwnerID: f.customerID,
		Name:    "My Push Day",
		Exercises: []domain.TemplateExercise{
			{ExerciseID: f.benchPressID, ExerciseName: "Bench Press", Sets: 3, Reps: 10, Weight: 50},
			{ExerciseID: f.squatID, ExerciseName: "Squat", Sets: 4, Reps: 8, Weight: 80},
		},
	})
	require.NoError(t, err)
	return templateID
}

func (f *trainingFixture) start(t *testing.T) *SessionState {
	t.Helper()
	state, err := f.service.StartSession(context.Background(), f.customerID, f.sessionID, f.routineID)
	require.NoError(t, err)
	return state
}

// --- Tests ---

func TestStartSession_LoadsBaselineWithNames(t *testing.T) {
	f := newTrainingFixture(t)
	state := f.start(t)

	assert.Equal(t, f.sessionID, state.SessionID)
	assert.Equal(t, f.routineID, state.RoutineID)
	require.Len(t, state.Exercises, 2)
	assert.Equal(t, "Bench Press", state.Exercises[0].ExerciseName)
	assert.Equal(t, f.sessionID, state.Exercises[0].SessionID)
	assert.False(t, state.Exercises[0].Completed)
}

func TestStartSession_LoadFailureDegradesToEmptyList(t *testing.T) {
	f := newTrainingFixture(t)
	f.sessionRepo.loadErr = errors.New("connection reset")

	state, err := f.service.StartSession(context.Background(), f.customerID, f.sessionID, f.routineID)
	require.NoError(t, err, "a fetch failure is not surfaced to the caller")
	assert.Empty(t, state.Exercises)

	// The session is live regardless; the customer can cancel and retry.
	_, err = f.service.CurrentState(f.customerID)
	assert.NoError(t, err)
}

func TestCurrentState_WithoutActiveSession(t *testing.T) {
	f := newTrainingFixture(t)
	_, err := f.service.CurrentState(f.customerID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestFinishSession_CheckboxOnlyPersistsBaselineValues(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)

	require.Len(t, completed.ExercisesDone, 1)
	done := completed.ExercisesDone[0]
	assert.Equal(t, f.benchPressID, done.ExerciseID)
	assert.True(t, done.Completed)
	assert.Equal(t, 50, done.Weight, "unedited parameters persist at baseline values")

	_, err = time.Parse(time.RFC3339, completed.DateFinished)
	assert.NoError(t, err)

	assert.Equal(t, f.sessionID, f.progress.pointers[f.customerID])

	// The live session is gone.
	_, err = f.service.CurrentState(f.customerID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestFinishSession_EditedButUncheckedPersistsCompletedFalse(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	edit := domain.SessionExercise{ExerciseID: f.benchPressID, Sets: 3, Reps: 10, Weight: 70}
	require.NoError(t, f.service.PublishEdit(f.customerID, edit))

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)

	require.Len(t, completed.ExercisesDone, 1)
	done := completed.ExercisesDone[0]
	assert.Equal(t, 70, done.Weight)
	assert.False(t, done.Completed)
	assert.Equal(t, "Bench Press", done.ExerciseName)
	assert.Equal(t, f.sessionID, done.SessionID)
}

func TestFinishSession_NothingDoneIsRejected(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	_, err := f.service.FinishSession(context.Background(), f.customerID)
	assert.ErrorIs(t, err, ErrNoEligibleExercises)

	// Rejection leaves the session active.
	_, err = f.service.CurrentState(f.customerID)
	assert.NoError(t, err)
	assert.Empty(t, f.completed.saved)
}

func TestFinishSession_HandbackWinsOverStoreEdit(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	storeEdit := domain.SessionExercise{ExerciseID: f.benchPressID, Sets: 3, Reps: 10, Weight: 60}
	require.NoError(t, f.service.PublishEdit(f.customerID, storeEdit))

	handback := domain.SessionExercise{ExerciseID: f.benchPressID, SessionID: f.sessionID, Sets: 3, Reps: 10, Weight: 80}
	require.NoError(t, f.service.HandBack(f.customerID, handback))

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)

	require.Len(t, completed.ExercisesDone, 1)
	assert.Equal(t, 80, completed.ExercisesDone[0].Weight)
}

func TestFinishSession_PersistenceFailureKeepsSessionActive(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))
	f.completed.createErr = errors.New("write concern error")

	_, err := f.service.FinishSession(context.Background(), f.customerID)
	assert.ErrorIs(t, err, ErrSaveSessionFailed)

	// Pointer untouched, session still live for a retry.
	assert.Empty(t, f.progress.pointers)
	_, err = f.service.CurrentState(f.customerID)
	require.NoError(t, err)

	f.completed.createErr = nil
	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)
	require.Len(t, completed.ExercisesDone, 1)
	assert.True(t, completed.ExercisesDone[0].Completed)
}

func TestFinishSession_PointerFailureIsAccepted(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))
	f.progress.setErr = errors.New("timeout")

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err, "a lagging pointer does not fail the finish")
	assert.Len(t, f.completed.saved, 1)
	assert.NotEqual(t, primitive.NilObjectID, completed.ID)
}

func TestSetCompleted_UnknownExercise(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	err := f.service.SetCompleted(f.customerID, primitive.NewObjectID(), true)
	assert.ErrorIs(t, err, ErrExerciseNotInSession)
}

func TestCancelSession_DiscardsWithoutPersisting(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)

	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))
	require.NoError(t, f.service.CancelSession(f.customerID))

	assert.Empty(t, f.completed.saved)
	assert.ErrorIs(t, f.service.CancelSession(f.customerID), ErrNoActiveSession)
}

func TestStartSession_ReplacesSessionInProgress(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)
	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))

	// Re-entering the same session starts fresh state.
	state := f.start(t)
	for _, record := range state.Exercises {
		assert.False(t, record.Completed)
	}
	_, err := f.service.FinishSession(context.Background(), f.customerID)
	assert.ErrorIs(t, err, ErrNoEligibleExercises)
}

func TestHistoryAndProgress(t *testing.T) {
	f := newTrainingFixture(t)
	f.start(t)
	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)

	history, err := f.service.GetHistory(context.Background(), f.customerID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got, err := f.service.GetCompletedSession(context.Background(), f.customerID, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, completed.ID, got.ID)

	_, err = f.service.GetCompletedSession(context.Background(), primitive.NewObjectID(), completed.ID)
	assert.ErrorIs(t, err, ErrHistoryNotOwned)

	_, err = f.service.GetCompletedSession(context.Background(), f.customerID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrHistoryNotFound)

	last, err := f.service.GetLastSessionTrained(context.Background(), f.customerID)
	require.NoError(t, err)
	assert.Equal(t, f.sessionID, last)

	// A customer with no history gets a nil pointer, not an error.
	last, err = f.service.GetLastSessionTrained(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, primitive.NilObjectID, last)
}

func TestStartTemplateSession_PlannedValuesBecomeBaseline(t *testing.T) {
	f := newTrainingFixture(t)
	templateID := f.addTemplate(t)

	state, err := f.service.StartTemplateSession(context.Background(), f.customerID, templateID)
	require.NoError(t, err)
	assert.False(t, state.SessionID.IsZero())
	assert.Equal(t, templateID, state.RoutineID)
	require.Len(t, state.Exercises, 2)
	assert.Equal(t, "Bench Press", state.Exercises[0].ExerciseName)
	assert.Equal(t, 50, state.Exercises[0].Weight)
	assert.Equal(t, state.SessionID, state.Exercises[0].SessionID)
	assert.False(t, state.Exercises[0].Completed)
}

func TestStartTemplateSession_OwnershipEnforced(t *testing.T) {
	f := newTrainingFixture(t)
	templateID := f.addTemplate(t)

	_, err := f.service.StartTemplateSession(context.Background(), primitive.NewObjectID(), templateID)
	assert.ErrorIs(t, err, ErrTemplateNotOwned)

	_, err = f.service.StartTemplateSession(context.Background(), f.customerID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestFinishTemplateSession_SavesCompletedOnly(t *testing.T) {
	f := newTrainingFixture(t)
	templateID := f.addTemplate(t)

	state, err := f.service.StartTemplateSession(context.Background(), f.customerID, templateID)
	require.NoError(t, err)

	// Retune the squat without checking it off; only the bench press is done.
	require.NoError(t, f.service.PublishEdit(f.customerID, domain.SessionExercise{
		ExerciseID: f.squatID, Sets: 5, Reps: 5, Weight: 100,
	}))
	require.NoError(t, f.service.SetCompleted(f.customerID, f.benchPressID, true))

	completed, err := f.service.FinishSession(context.Background(), f.customerID)
	require.NoError(t, err)
	assert.Equal(t, templateID, completed.RoutineID)
	assert.Equal(t, state.SessionID, completed.SessionID)
	require.Len(t, completed.ExercisesDone, 1)
	assert.Equal(t, f.benchPressID, completed.ExercisesDone[0].ExerciseID)
	assert.True(t, completed.ExercisesDone[0].Completed)

	last, err := f.service.GetLastSessionTrained(context.Background(), f.customerID)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, last)
}

func TestFinishTemplateSession_NothingCheckedIsRejected(t *testing.T) {
	f := newTrainingFixture(t)
	templateID := f.addTemplate(t)

	_, err := f.service.StartTemplateSession(context.Background(), f.customerID, templateID)
	require.NoError(t, err)

	// An edit alone never saves a template session.
	require.NoError(t, f.service.PublishEdit(f.customerID, domain.SessionExercise{
		ExerciseID: f.benchPressID, Sets: 5, Reps: 5, Weight: 60,
	}))
	_, err = f.service.FinishSession(context.Background(), f.customerID)
	assert.ErrorIs(t, err, ErrNoEligibleExercises)
}
