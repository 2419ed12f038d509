package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"
	"fitvalle/coaching-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound  = errors.New("customer profile not found")
	ErrAvatarNotSet     = errors.New("customer has no avatar")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
)

// AvatarUploadResponse carries the presigned URL and the object key the
// client must report back on confirm.
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type CustomerService interface {
	SaveProfile(ctx context.Context, customer domain.Customer) error
	GetProfile(ctx context.Context, customerID primitive.ObjectID) (*domain.Customer, error)
	SubmitRequest(ctx context.Context, customerID primitive.ObjectID, description string) (*domain.Request, error)
	GetRequests(ctx context.Context, customerID primitive.ObjectID) ([]domain.Request, error)

	// Avatar upload over presigned URLs
	RequestAvatarUploadURL(ctx context.Context, customerID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error)
	ConfirmAvatarUpload(ctx context.Context, customerID primitive.ObjectID, objectKey string) error
	GetAvatarDownloadURL(ctx context.Context, customerID primitive.ObjectID) (string, error)
}

// customerService implements the CustomerService interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	fileStorage  storage.FileStorage
}

// NewCustomerService creates a new instance of customerService.
func NewCustomerService(customerRepo repository.CustomerRepository, fileStorage storage.FileStorage) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		fileStorage:  fileStorage,
	}
}

// SaveProfile stores the customer's onboarding answers.
func (s *customerService) SaveProfile(ctx context.Context, customer domain.Customer) error {
	if customer.ID == primitive.NilObjectID {
		return errors.New("customer ID is required")
	}
	return s.customerRepo.SaveProfile(ctx, &customer)
}

// GetProfile retrieves the customer's profile.
func (s *customerService) GetProfile(ctx context.Context, customerID primitive.ObjectID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetProfile(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return customer, nil
}

// SubmitRequest files a coaching request built from the customer's
// training preferences.
func (s *customerService) SubmitRequest(ctx context.Context, customerID primitive.ObjectID, description string) (*domain.Request, error) {
	if description == "" {
		return nil, errors.New("request description is required")
	}
	request := &domain.Request{
		CustomerID:  customerID,
		Description: description,
		State:       domain.RequestPending,
	}
	requestID, err := s.customerRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = requestID
	return request, nil
}

// GetRequests lists the customer's coaching requests, newest first, so
// they can see where each one stands.
func (s *customerService) GetRequests(ctx context.Context, customerID primitive.ObjectID) ([]domain.Request, error) {
	return s.customerRepo.GetRequestsByCustomerID(ctx, customerID)
}

// RequestAvatarUploadURL generates a presigned URL for the customer to
// upload their avatar image directly to object storage.
func (s *customerService) RequestAvatarUploadURL(ctx context.Context, customerID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error) {
	if customerID == primitive.NilObjectID {
		return nil, errors.New("customer ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("avatars", customerID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		log.Printf("ERROR: presigning avatar upload for %s: %v", customerID.Hex(), err)
		return nil, ErrUploadURLError
	}

	return &AvatarUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatarUpload records the uploaded object key on the profile,
// deleting the previous avatar object if one existed.
func (s *customerService) ConfirmAvatarUpload(ctx context.Context, customerID primitive.ObjectID, objectKey string) error {
	if objectKey == "" || !strings.HasPrefix(objectKey, path.Join("avatars", customerID.Hex())+"/") {
		return errors.New("object key does not belong to this customer")
	}

	previous := ""
	if profile, err := s.customerRepo.GetProfile(ctx, customerID); err == nil {
		previous = profile.AvatarKey
	}

	if err := s.customerRepo.SetAvatarKey(ctx, customerID, objectKey); err != nil {
		return err
	}

	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.Printf("WARN: could not delete old avatar %s: %v", previous, err)
		}
	}
	return nil
}

// GetAvatarDownloadURL generates a temporary URL for viewing the avatar.
func (s *customerService) GetAvatarDownloadURL(ctx context.Context, customerID primitive.ObjectID) (string, error) {
	profile, err := s.customerRepo.GetProfile(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAvatarNotSet
		}
		return "", err
	}
	if profile.AvatarKey == "" {
		return "", ErrAvatarNotSet
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, profile.AvatarKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
