package mongo

import (
	"context"
	"errors"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionExerciseCollectionName = "sessionExercises"

// mongoSessionExerciseRepository implements repository.SessionExerciseRepository
type mongoSessionExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionExerciseRepository creates a new SessionExercise repository.
func NewMongoSessionExerciseRepository(db *mongo.Database) repository.SessionExerciseRepository {
	return &mongoSessionExerciseRepository{
		collection: db.Collection(sessionExerciseCollectionName),
	}
}

// GetBySessionID retrieves the coach-assigned parameter records for a session.
// A session with no records yields an empty slice, not an error.
func (r *mongoSessionExerciseRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error) {
	var exercises []domain.SessionExercise
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// ReplaceForSession swaps out the full exercise list for one session. The
// delete and insert are not transactional; the session sub-tree is only
// written through this path, so a torn replace is rewritten on next save.
func (r *mongoSessionExerciseRepository) ReplaceForSession(ctx context.Context, sessionID primitive.ObjectID, exercises []domain.SessionExercise) error {
	if sessionID == primitive.NilObjectID {
		return errors.New("session ID is required")
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return err
	}
	if len(exercises) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(exercises))
	for _, ex := range exercises {
		ex.SessionID = sessionID
		docs = append(docs, ex)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// EnsureSessionExerciseIndexes creates necessary indexes. Call during startup.
func EnsureSessionExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
