package services

import (
	"fmt"

	"wardrobe/internal/logger"
	"wardrobe/internal/models"
	"wardrobe/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutfitService handles business logic related to outfits.
type OutfitService struct {
	outfitRepo repositories.OutfitRepository
	itemRepo   repositories.ItemRepository
	publisher  EventPublisher
	log        *zap.Logger
}

// NewOutfitService creates a new OutfitService. publisher may be nil.
func NewOutfitService(outfitRepo repositories.OutfitRepository, itemRepo repositories.ItemRepository, publisher EventPublisher) *OutfitService {
	return &OutfitService{
		outfitRepo: outfitRepo,
		itemRepo:   itemRepo,
		publisher:  publisher,
		log:        logger.Named("outfits"),
	}
}

// ListOutfits returns every outfit the user owns.
func (s *OutfitService) ListOutfits(userID string) ([]models.Outfit, error) {
	return s.outfitRepo.ListByUser(userID)
}

// GetOutfit returns one of the user's outfits.
func (s *OutfitService) GetOutfit(userID, outfitID string) (*models.Outfit, error) {
	outfit, err := s.outfitRepo.GetByID(userID, outfitID)
	if err != nil {
		return nil, err
	}
	if outfit == nil {
		return nil, ErrOutfitNotFound
	}
	return outfit, nil
}

// CreateOutfit stores a new outfit after checking that every item exists. Any id,
// createdAt or lastWorn in req is ignored.
func (s *OutfitService) CreateOutfit(userID string, req models.Outfit) (*models.Outfit, error) {
	if err := s.checkItems(userID, req.Items); err != nil {
		return nil, err
	}

	req.ID = ""
	req.CreatedAt = models.Now()
	req.LastWorn = nil
	outfit, err := s.outfitRepo.Create(userID, uuid.New().String(), &req)
	if err != nil {
		return nil, fmt.Errorf("failed to create outfit: %w", err)
	}

	publish(s.publisher, s.log, EventOutfitCreated, map[string]interface{}{
		"userID":   userID,
		"outfitID": outfit.ID,
		"items":    outfit.Items,
	})
	return outfit, nil
}

// UpdateOutfit applies a partial update. A non-empty items list is checked before
// the outfit itself is looked up; an empty one is stored as is.
func (s *OutfitService) UpdateOutfit(userID, outfitID string, patch models.OutfitPatch) (*models.Outfit, error) {
	if len(patch.Items) > 0 {
		if err := s.checkItems(userID, patch.Items); err != nil {
			return nil, err
		}
	}

	outfit, err := s.outfitRepo.Update(userID, outfitID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update outfit %s: %w", outfitID, err)
	}
	if outfit == nil {
		return nil, ErrOutfitNotFound
	}

	publish(s.publisher, s.log, EventOutfitUpdated, map[string]interface{}{
		"userID":   userID,
		"outfitID": outfitID,
	})
	return outfit, nil
}

// DeleteOutfit removes an outfit. Its items are untouched.
func (s *OutfitService) DeleteOutfit(userID, outfitID string) error {
	deleted, err := s.outfitRepo.Delete(userID, outfitID)
	if err != nil {
		return fmt.Errorf("failed to delete outfit %s: %w", outfitID, err)
	}
	if !deleted {
		return ErrOutfitNotFound
	}

	publish(s.publisher, s.log, EventOutfitDeleted, map[string]interface{}{
		"userID":   userID,
		"outfitID": outfitID,
	})
	return nil
}

func (s *OutfitService) checkItems(userID string, itemIDs []string) error {
	for _, id := range itemIDs {
		item, err := s.itemRepo.GetByID(userID, id)
		if err != nil {
			return fmt.Errorf("failed to check item %s: %w", id, err)
		}
		if item == nil {
			return &ItemReferenceError{ItemID: id}
		}
	}
	return nil
}
