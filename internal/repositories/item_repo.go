package repositories

import "wardrobe/internal/models"

// ItemRepository defines the interface for clothing item data access.
// Every method is scoped to one user's partition; absent items are (nil, nil).
type ItemRepository interface {
	ListByUser(userID string) ([]models.Item, error)
	GetByID(userID, itemID string) (*models.Item, error)
	Create(userID, itemID string, item *models.Item) (*models.Item, error)
	Update(userID, itemID string, patch models.ItemPatch) (*models.Item, error)
	Delete(userID, itemID string) (bool, error)
}
