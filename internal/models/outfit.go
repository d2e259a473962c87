package models

// Outfit groups item ids. Items holds weak references: nothing keeps them valid
// after creation except the cascade that runs when an item is deleted.
type Outfit struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description *string    `json:"description"`
	Items       []string   `json:"items" validate:"required"`
	Occasion    []Occasion `json:"occasion" validate:"required,dive,enum"`
	Season      []Season   `json:"season" validate:"required,dive,enum"`
	Favorite    bool       `json:"favorite"`
	LastWorn    *Timestamp `json:"lastWorn"`
	CreatedAt   Timestamp  `json:"createdAt"`
}

// OutfitPatch follows the same rules as ItemPatch.
type OutfitPatch struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Items       []string   `json:"items"`
	Occasion    []Occasion `json:"occasion" validate:"omitempty,dive,enum"`
	Season      []Season   `json:"season" validate:"omitempty,dive,enum"`
	Favorite    *bool      `json:"favorite"`
	LastWorn    *Timestamp `json:"lastWorn"`
}

// Apply merges the set fields of p into outfit.
func (p OutfitPatch) Apply(outfit *Outfit) {
	if p.Name != nil {
		outfit.Name = *p.Name
	}
	if p.Description != nil {
		outfit.Description = p.Description
	}
	if p.Items != nil {
		outfit.Items = p.Items
	}
	if p.Occasion != nil {
		outfit.Occasion = p.Occasion
	}
	if p.Season != nil {
		outfit.Season = p.Season
	}
	if p.Favorite != nil {
		outfit.Favorite = *p.Favorite
	}
	if p.LastWorn != nil {
		outfit.LastWorn = p.LastWorn
	}
}

// RemoveItem drops every occurrence of itemID from Items, keeping the order of the
// rest. It reports whether anything was removed.
func (o *Outfit) RemoveItem(itemID string) bool {
	kept := make([]string, 0, len(o.Items))
	for _, id := range o.Items {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(o.Items) {
		return false
	}
	o.Items = kept
	return true
}
