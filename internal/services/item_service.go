package services

import (
	"fmt"

	"wardrobe/internal/logger"
	"wardrobe/internal/models"
	"wardrobe/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemService handles business logic related to clothing items.
type ItemService struct {
	itemRepo  repositories.ItemRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewItemService creates a new ItemService. publisher may be nil.
func NewItemService(itemRepo repositories.ItemRepository, publisher EventPublisher) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		publisher: publisher,
		log:       logger.Named("items"),
	}
}

// ListItems returns every item the user owns.
func (s *ItemService) ListItems(userID string) ([]models.Item, error) {
	return s.itemRepo.ListByUser(userID)
}

// GetItem returns one of the user's items.
func (s *ItemService) GetItem(userID, itemID string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// CreateItem stores a new item under a fresh id. Any id, createdAt or lastWorn in req is ignored.
func (s *ItemService) CreateItem(userID string, req models.Item) (*models.Item, error) {
	req.ID = ""
	req.CreatedAt = models.Now()
	req.LastWorn = nil

	item, err := s.itemRepo.Create(userID, uuid.New().String(), &req)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	publish(s.publisher, s.log, EventItemCreated, map[string]interface{}{
		"userID":   userID,
		"itemID":   item.ID,
		"category": item.Category,
	})
	return item, nil
}

// UpdateItem applies a partial update to one of the user's items.
func (s *ItemService) UpdateItem(userID, itemID string, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.itemRepo.Update(userID, itemID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", itemID, err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	publish(s.publisher, s.log, EventItemUpdated, map[string]interface{}{
		"userID": userID,
		"itemID": itemID,
	})
	return item, nil
}

// DeleteItem removes an item and every reference to it from the user's outfits.
func (s *ItemService) DeleteItem(userID, itemID string) error {
	deleted, err := s.itemRepo.Delete(userID, itemID)
	if deleted {
		// the item is gone even when the outfit cleanup failed
		publish(s.publisher, s.log, EventItemDeleted, map[string]interface{}{
			"userID": userID,
			"itemID": itemID,
		})
	}
	if err != nil {
		s.log.Error("item delete failed", zap.String("item_id", itemID), zap.Bool("item_removed", deleted), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrItemNotFound
	}
	return nil
}
