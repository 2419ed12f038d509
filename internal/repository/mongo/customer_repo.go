package mongo

import (
	"context"
	"errors"
	"time"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customerCollectionName = "customers"
	requestCollectionName  = "requests"
)

// mongoCustomerRepository implements repository.CustomerRepository
type mongoCustomerRepository struct {
	customers *mongo.Collection
	requests  *mongo.Collection
}

// NewMongoCustomerRepository creates a new Customer repository.
func NewMongoCustomerRepository(db *mongo.Database) repository.CustomerRepository {
	return &mongoCustomerRepository{
		customers: db.Collection(customerCollectionName),
		requests:  db.Collection(requestCollectionName),
	}
}

// SaveProfile upserts the customer's onboarding profile. The profile shares
// its ID with the owning user account, so repeated saves overwrite.
func (r *mongoCustomerRepository) SaveProfile(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == primitive.NilObjectID {
		return errors.New("customer profile requires an ID")
	}
	now := time.Now().UTC()
	customer.UpdatedAt = now

	filter := bson.M{"_id": customer.ID}
	update := bson.M{
		"$set": bson.M{
			"weight":     customer.Weight,
			"height":     customer.Height,
			"birthdate":  customer.Birthdate,
			"goalWeight": customer.GoalWeight,
			"updatedAt":  customer.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := r.customers.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetProfile retrieves the customer's profile.
func (r *mongoCustomerRepository) GetProfile(ctx context.Context, customerID primitive.ObjectID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.customers.FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// SetAvatarKey records the S3 object key of the customer's avatar.
func (r *mongoCustomerRepository) SetAvatarKey(ctx context.Context, customerID primitive.ObjectID, objectKey string) error {
	filter := bson.M{"_id": customerID}
	update := bson.M{
		"$set":         bson.M{"avatarKey": objectKey, "updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	}
	_, err := r.customers.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// CreateRequest inserts a new coaching request.
func (r *mongoCustomerRepository) CreateRequest(ctx context.Context, request *domain.Request) (primitive.ObjectID, error) {
	if request.CustomerID == primitive.NilObjectID || request.Description == "" {
		return primitive.NilObjectID, errors.New("request requires customerId and description")
	}
	request.ID = primitive.NewObjectID()
	if request.State == "" {
		request.State = domain.RequestPending
	}
	request.CreatedAt = time.Now().UTC()

	result, err := r.requests.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted request ID")
	}
	return insertedID, nil
}

// GetRequestsByCustomerID retrieves a customer's coaching requests, newest first.
func (r *mongoCustomerRepository) GetRequestsByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]domain.Request, error) {
	var requests []domain.Request
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.requests.Find(ctx, bson.M{"customerId": customerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// EnsureRequestIndexes creates necessary indexes. Call during startup.
func EnsureRequestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
