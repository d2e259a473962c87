package services_test

import (
	"wardrobe/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
// Create echoes the user back with the id attached unless an error is configured.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(id string, user *models.User) (*models.User, error) {
	args := m.Called(id, user)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *user
	stored.ID = id
	return &stored, nil
}

// MockItemRepository is a mock implementation of repositories.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByUser(userID string) ([]models.Item, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(userID, itemID string) (*models.Item, error) {
	args := m.Called(userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(userID, itemID string, item *models.Item) (*models.Item, error) {
	args := m.Called(userID, itemID, item)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *item
	stored.ID = itemID
	return &stored, nil
}

func (m *MockItemRepository) Update(userID, itemID string, patch models.ItemPatch) (*models.Item, error) {
	args := m.Called(userID, itemID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(userID, itemID string) (bool, error) {
	args := m.Called(userID, itemID)
	return args.Bool(0), args.Error(1)
}

// MockOutfitRepository is a mock implementation of repositories.OutfitRepository.
type MockOutfitRepository struct {
	mock.Mock
}

func (m *MockOutfitRepository) ListByUser(userID string) ([]models.Outfit, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Outfit), args.Error(1)
}

func (m *MockOutfitRepository) GetByID(userID, outfitID string) (*models.Outfit, error) {
	args := m.Called(userID, outfitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Outfit), args.Error(1)
}

func (m *MockOutfitRepository) Create(userID, outfitID string, outfit *models.Outfit) (*models.Outfit, error) {
	args := m.Called(userID, outfitID, outfit)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *outfit
	stored.ID = outfitID
	return &stored, nil
}

func (m *MockOutfitRepository) Update(userID, outfitID string, patch models.OutfitPatch) (*models.Outfit, error) {
	args := m.Called(userID, outfitID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Outfit), args.Error(1)
}

func (m *MockOutfitRepository) Delete(userID, outfitID string) (bool, error) {
	args := m.Called(userID, outfitID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}
