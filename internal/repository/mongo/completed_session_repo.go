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

const completedSessionCollectionName = "completedSessions"

// mongoCompletedSessionRepository implements repository.CompletedSessionRepository
type mongoCompletedSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletedSessionRepository creates a new CompletedSession repository.
func NewMongoCompletedSessionRepository(db *mongo.Database) repository.CompletedSessionRepository {
	return &mongoCompletedSessionRepository{
		collection: db.Collection(completedSessionCollectionName),
	}
}

// Create inserts a finished-session record. The whole record is written as
// one document, so the save is atomic.
func (r *mongoCompletedSessionRepository) Create(ctx context.Context, session *domain.CompletedSession) (primitive.ObjectID, error) {
	if session.CustomerID == primitive.NilObjectID || session.SessionID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("completed session requires customerId and sessionId")
	}
	if len(session.ExercisesDone) == 0 {
		return primitive.NilObjectID, errors.New("completed session requires at least one exercise")
	}
	if session.ID == primitive.NilObjectID {
		session.ID = primitive.NewObjectID()
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted completed session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single completed session by its ID.
func (r *mongoCompletedSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CompletedSession, error) {
	var session domain.CompletedSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByCustomerID retrieves a customer's training history, newest first.
func (r *mongoCompletedSessionRepository) GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]domain.CompletedSession, error) {
	var sessions []domain.CompletedSession
	findOptions := options.Find().SetSort(bson.D{{Key: "dateFinished", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"customerId": customerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureCompletedSessionIndexes creates necessary indexes. Call during startup.
func EnsureCompletedSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "dateFinished", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
