package repositories

import (
	"fmt"

	"wardrobe/internal/storage"
)

// Names of the persisted documents.
const (
	UsersDocument   = "users"
	ItemsDocument   = "items"
	OutfitsDocument = "outfits"
)

// loadPartition loads a whole per-user document and decodes one user's partition.
// A user with no partition gets an empty, non-nil map.
func loadPartition[T any](store storage.Backend, name, userID string) (storage.Document, map[string]T, error) {
	doc, err := store.Load(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	var partition map[string]T
	if _, err := doc.Get(userID, &partition); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s of user %s: %w", name, userID, err)
	}
	if partition == nil {
		partition = make(map[string]T)
	}
	return doc, partition, nil
}

// savePartition writes the partition back into doc and rewrites the whole document.
func savePartition[T any](store storage.Backend, name string, doc storage.Document, userID string, partition map[string]T) error {
	if err := doc.Put(userID, partition); err != nil {
		return fmt.Errorf("failed to encode %s of user %s: %w", name, userID, err)
	}
	if err := store.Save(name, doc); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
