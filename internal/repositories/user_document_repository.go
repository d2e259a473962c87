package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"wardrobe/internal/models"
	"wardrobe/internal/storage"
)

var errStopScan = errors.New("stop scan")

// DocumentUserRepository keeps users in the "users" document, keyed by user id.
type DocumentUserRepository struct {
	store storage.Backend
}

// NewDocumentUserRepository creates a new instance of DocumentUserRepository.
func NewDocumentUserRepository(store storage.Backend) *DocumentUserRepository {
	return &DocumentUserRepository{store: store}
}

// FindByEmail scans every user and returns the first whose email matches.
// Email uniqueness is the caller's responsibility.
func (r *DocumentUserRepository) FindByEmail(email string) (*models.User, error) {
	doc, err := r.store.Load(UsersDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var found *models.User
	err = doc.Scan(func(id string, raw json.RawMessage) error {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return fmt.Errorf("failed to decode user %s: %w", id, err)
		}
		if user.Email == email {
			user.ID = id
			found = &user
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return nil, err
	}
	return found, nil
}

// FindByID looks a user up by document key.
func (r *DocumentUserRepository) FindByID(id string) (*models.User, error) {
	doc, err := r.store.Load(UsersDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var user models.User
	ok, err := doc.Get(id, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	user.ID = id
	return &user, nil
}

// Create stores user at id, overwriting any existing record.
func (r *DocumentUserRepository) Create(id string, user *models.User) (*models.User, error) {
	doc, err := r.store.Load(UsersDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	stored := *user
	stored.ID = ""
	if err := doc.Put(id, stored); err != nil {
		return nil, fmt.Errorf("failed to encode user %s: %w", id, err)
	}
	if err := r.store.Save(UsersDocument, doc); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	stored.ID = id
	return &stored, nil
}
