package repositories

import (
	"fmt"
	"sort"

	"wardrobe/internal/models"
	"wardrobe/internal/storage"
)

// DocumentOutfitRepository keeps outfits in the "outfits" document:
// user id → outfit id → outfit.
type DocumentOutfitRepository struct {
	store storage.Backend
}

// NewDocumentOutfitRepository creates a new instance of DocumentOutfitRepository.
func NewDocumentOutfitRepository(store storage.Backend) *DocumentOutfitRepository {
	return &DocumentOutfitRepository{store: store}
}

func (r *DocumentOutfitRepository) ListByUser(userID string) ([]models.Outfit, error) {
	_, partition, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return nil, err
	}

	outfits := make([]models.Outfit, 0, len(partition))
	for id, outfit := range partition {
		outfit.ID = id
		outfits = append(outfits, outfit)
	}
	sort.Slice(outfits, func(i, j int) bool {
		if !outfits[i].CreatedAt.Equal(outfits[j].CreatedAt.Time) {
			return outfits[i].CreatedAt.Before(outfits[j].CreatedAt.Time)
		}
		return outfits[i].ID < outfits[j].ID
	})
	return outfits, nil
}

func (r *DocumentOutfitRepository) GetByID(userID, outfitID string) (*models.Outfit, error) {
	_, partition, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return nil, err
	}
	outfit, ok := partition[outfitID]
	if !ok {
		return nil, nil
	}
	outfit.ID = outfitID
	return &outfit, nil
}

func (r *DocumentOutfitRepository) Create(userID, outfitID string, outfit *models.Outfit) (*models.Outfit, error) {
	doc, partition, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return nil, err
	}

	stored := *outfit
	stored.ID = ""
	partition[outfitID] = stored
	if err := savePartition(r.store, OutfitsDocument, doc, userID, partition); err != nil {
		return nil, fmt.Errorf("failed to create outfit: %w", err)
	}

	stored.ID = outfitID
	return &stored, nil
}

func (r *DocumentOutfitRepository) Update(userID, outfitID string, patch models.OutfitPatch) (*models.Outfit, error) {
	doc, partition, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return nil, err
	}
	outfit, ok := partition[outfitID]
	if !ok {
		return nil, nil
	}

	patch.Apply(&outfit)
	outfit.ID = ""
	partition[outfitID] = outfit
	if err := savePartition(r.store, OutfitsDocument, doc, userID, partition); err != nil {
		return nil, fmt.Errorf("failed to update outfit: %w", err)
	}

	outfit.ID = outfitID
	return &outfit, nil
}

// Delete removes the outfit. Items are not touched.
func (r *DocumentOutfitRepository) Delete(userID, outfitID string) (bool, error) {
	doc, partition, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return false, err
	}
	if _, ok := partition[outfitID]; !ok {
		return false, nil
	}

	delete(partition, outfitID)
	if err := savePartition(r.store, OutfitsDocument, doc, userID, partition); err != nil {
		return false, fmt.Errorf("failed to delete outfit: %w", err)
	}
	return true, nil
}
