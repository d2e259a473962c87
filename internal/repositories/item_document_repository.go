package repositories

import (
	"fmt"
	"sort"

	"wardrobe/internal/models"
	"wardrobe/internal/storage"
)

// DocumentItemRepository keeps items in the "items" document:
// user id → item id → item.
type DocumentItemRepository struct {
	store storage.Backend
}

// NewDocumentItemRepository creates a new instance of DocumentItemRepository.
func NewDocumentItemRepository(store storage.Backend) *DocumentItemRepository {
	return &DocumentItemRepository{store: store}
}

// ListByUser returns the user's items ordered by creation time, then id.
func (r *DocumentItemRepository) ListByUser(userID string) ([]models.Item, error) {
	_, partition, err := loadPartition[models.Item](r.store, ItemsDocument, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(partition))
	for id, item := range partition {
		item.ID = id
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt.Time) {
			return items[i].CreatedAt.Before(items[j].CreatedAt.Time)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// GetByID returns one item or nil if the user has no such item.
func (r *DocumentItemRepository) GetByID(userID, itemID string) (*models.Item, error) {
	_, partition, err := loadPartition[models.Item](r.store, ItemsDocument, userID)
	if err != nil {
		return nil, err
	}
	item, ok := partition[itemID]
	if !ok {
		return nil, nil
	}
	item.ID = itemID
	return &item, nil
}

// Create stores item under itemID, creating the user's partition if needed.
func (r *DocumentItemRepository) Create(userID, itemID string, item *models.Item) (*models.Item, error) {
	doc, partition, err := loadPartition[models.Item](r.store, ItemsDocument, userID)
	if err != nil {
		return nil, err
	}

	stored := *item
	stored.ID = ""
	partition[itemID] = stored
	if err := savePartition(r.store, ItemsDocument, doc, userID, partition); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	stored.ID = itemID
	return &stored, nil
}

// Update merges patch into the stored item and returns the result, or nil if the
// item does not exist.
func (r *DocumentItemRepository) Update(userID, itemID string, patch models.ItemPatch) (*models.Item, error) {
	doc, partition, err := loadPartition[models.Item](r.store, ItemsDocument, userID)
	if err != nil {
		return nil, err
	}
	item, ok := partition[itemID]
	if !ok {
		return nil, nil
	}

	patch.Apply(&item)
	item.ID = ""
	partition[itemID] = item
	if err := savePartition(r.store, ItemsDocument, doc, userID, partition); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	item.ID = itemID
	return &item, nil
}

// Delete removes the item and then strips its id from the user's outfits.
// The two documents are saved one after the other, not atomically: if the outfits
// save fails the item is already gone, Delete reports true together with the error,
// and outfits may keep a dangling reference.
func (r *DocumentItemRepository) Delete(userID, itemID string) (bool, error) {
	doc, partition, err := loadPartition[models.Item](r.store, ItemsDocument, userID)
	if err != nil {
		return false, err
	}
	if _, ok := partition[itemID]; !ok {
		return false, nil
	}

	delete(partition, itemID)
	if err := savePartition(r.store, ItemsDocument, doc, userID, partition); err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	if err := r.removeFromOutfits(userID, itemID); err != nil {
		return true, fmt.Errorf("item %s deleted but outfits still reference it: %w", itemID, err)
	}
	return true, nil
}

func (r *DocumentItemRepository) removeFromOutfits(userID, itemID string) error {
	doc, outfits, err := loadPartition[models.Outfit](r.store, OutfitsDocument, userID)
	if err != nil {
		return err
	}
	for id, outfit := range outfits {
		if outfit.RemoveItem(itemID) {
			outfits[id] = outfit
		}
	}
	return savePartition(r.store, OutfitsDocument, doc, userID, outfits)
}
