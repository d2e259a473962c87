package repositories

import "wardrobe/internal/models"

// OutfitRepository defines the interface for outfit data access. It accepts any
// item id list; checking the ids against ItemRepository is the caller's job.
type OutfitRepository interface {
	ListByUser(userID string) ([]models.Outfit, error)
	GetByID(userID, outfitID string) (*models.Outfit, error)
	Create(userID, outfitID string, outfit *models.Outfit) (*models.Outfit, error)
	Update(userID, outfitID string, patch models.OutfitPatch) (*models.Outfit, error)
	Delete(userID, outfitID string) (bool, error)
}
