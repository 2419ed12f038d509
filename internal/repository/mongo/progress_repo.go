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

const progressCollectionName = "userProgress"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// SetLastSessionTrained upserts the customer's progress pointer.
func (r *mongoProgressRepository) SetLastSessionTrained(ctx context.Context, customerID, sessionID primitive.ObjectID) error {
	if customerID == primitive.NilObjectID || sessionID == primitive.NilObjectID {
		return errors.New("customer ID and session ID are required")
	}
	filter := bson.M{"_id": customerID}
	update := bson.M{"$set": bson.M{"lastSessionTrained": sessionID}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetLastSessionTrained returns the session the customer last trained, or
// ErrNotFound if they have never finished one.
func (r *mongoProgressRepository) GetLastSessionTrained(ctx context.Context, customerID primitive.ObjectID) (primitive.ObjectID, error) {
	var progress domain.Progress
	err := r.collection.FindOne(ctx, bson.M{"_id": customerID}).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, repository.ErrNotFound
		}
		return primitive.NilObjectID, err
	}
	return progress.LastSessionTrained, nil
}
