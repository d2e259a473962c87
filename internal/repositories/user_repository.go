package repositories

import "wardrobe/internal/models"

// UserRepository defines the interface for user data access.
// Absent users are reported as (nil, nil).
type UserRepository interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	Create(id string, user *models.User) (*models.User, error)
}
