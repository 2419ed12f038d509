package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCustomerRepo struct {
	profiles map[primitive.ObjectID]domain.Customer
	requests []domain.Request
}

func (f *fakeCustomerRepo) SaveProfile(_ context.Context, customer *domain.Customer) error {
	if f.profiles == nil {
		f.profiles = map[primitive.ObjectID]domain.Customer{}
	}
	f.profiles[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) GetProfile(_ context.Context, customerID primitive.ObjectID) (*domain.Customer, error) {
	if p, ok := f.profiles[customerID]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) SetAvatarKey(_ context.Context, customerID primitive.ObjectID, objectKey string) error {
	profile := f.profiles[customerID]
	profile.ID = customerID
	profile.AvatarKey = objectKey
	if f.profiles == nil {
		f.profiles = map[primitive.ObjectID]domain.Customer{}
	}
	f.profiles[customerID] = profile
	return nil
}

func (f *fakeCustomerRepo) CreateRequest(_ context.Context, request *domain.Request) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *request
	stored.ID = id
	f.requests = append(f.requests, stored)
	return id, nil
}

func (f *fakeCustomerRepo) GetRequestsByCustomerID(_ context.Context, customerID primitive.ObjectID) ([]domain.Request, error) {
	var out []domain.Request
	for _, r := range f.requests {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.local/%s?sig=upload", objectKey), nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.local/%s?sig=download", objectKey), nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newCustomerFixture() (CustomerService, *fakeCustomerRepo, *fakeFileStorage) {
	repo := &fakeCustomerRepo{}
	storage := &fakeFileStorage{}
	return NewCustomerService(repo, storage), repo, storage
}

func TestSaveAndGetProfile(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	customerID := primitive.NewObjectID()

	err := svc.SaveProfile(context.Background(), domain.Customer{
		ID:         customerID,
		Weight:     "82",
		Height:     "180",
		Birthdate:  "1995-04-12",
		GoalWeight: "78",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, "82", profile.Weight)
	assert.Equal(t, "78", profile.GoalWeight)

	_, err = svc.GetProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSubmitRequest(t *testing.T) {
	svc, repo, _ := newCustomerFixture()
	customerID := primitive.NewObjectID()

	request, err := svc.SubmitRequest(context.Background(), customerID, "strength, intermediate, 3 days/week")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, request.State)
	assert.NotEqual(t, primitive.NilObjectID, request.ID)
	assert.Len(t, repo.requests, 1)

	_, err = svc.SubmitRequest(context.Background(), customerID, "")
	assert.Error(t, err)
}

func TestGetRequests_ReturnsOnlyOwn(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	customerID := primitive.NewObjectID()

	submitted, err := svc.SubmitRequest(context.Background(), customerID, "strength, intermediate, 3 days/week")
	require.NoError(t, err)
	_, err = svc.SubmitRequest(context.Background(), primitive.NewObjectID(), "hypertrophy, beginner")
	require.NoError(t, err)

	requests, err := svc.GetRequests(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, submitted.ID, requests[0].ID)
	assert.Equal(t, domain.RequestPending, requests[0].State)
}

func TestRequestAvatarUploadURL(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	customerID := primitive.NewObjectID()

	response, err := svc.RequestAvatarUploadURL(context.Background(), customerID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(response.ObjectKey, "avatars/"+customerID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(response.ObjectKey, ".png"))
	assert.Contains(t, response.UploadURL, response.ObjectKey)

	_, err = svc.RequestAvatarUploadURL(context.Background(), customerID, "application/pdf")
	assert.Error(t, err)
	_, err = svc.RequestAvatarUploadURL(context.Background(), customerID, "")
	assert.Error(t, err)
}

func TestConfirmAvatarUpload(t *testing.T) {
	svc, repo, storage := newCustomerFixture()
	customerID := primitive.NewObjectID()
	firstKey := "avatars/" + customerID.Hex() + "/first.png"
	secondKey := "avatars/" + customerID.Hex() + "/second.png"

	require.NoError(t, svc.ConfirmAvatarUpload(context.Background(), customerID, firstKey))
	assert.Equal(t, firstKey, repo.profiles[customerID].AvatarKey)

	// Replacing the avatar removes the old object.
	require.NoError(t, svc.ConfirmAvatarUpload(context.Background(), customerID, secondKey))
	assert.Equal(t, secondKey, repo.profiles[customerID].AvatarKey)
	assert.Equal(t, []string{firstKey}, storage.deleted)

	// A key under another customer's prefix is rejected.
	foreignKey := "avatars/" + primitive.NewObjectID().Hex() + "/sneaky.png"
	assert.Error(t, svc.ConfirmAvatarUpload(context.Background(), customerID, foreignKey))
}

func TestGetAvatarDownloadURL(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	customerID := primitive.NewObjectID()

	_, err := svc.GetAvatarDownloadURL(context.Background(), customerID)
	assert.ErrorIs(t, err, ErrAvatarNotSet)

	key := "avatars/" + customerID.Hex() + "/pic.jpeg"
	require.NoError(t, svc.ConfirmAvatarUpload(context.Background(), customerID, key))

	url, err := svc.GetAvatarDownloadURL(context.Background(), customerID)
	require.NoError(t, err)
	assert.Contains(t, url, key)
}
