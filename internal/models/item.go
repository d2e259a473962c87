package models

// Item is one clothing item. ID is the item's key inside its owner's partition of
// the items document.
type Item struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description *string    `json:"description"`
	ImageURL    string     `json:"imageUrl" validate:"required"`
	Category    Category   `json:"category" validate:"required,enum"`
	Color       Color      `json:"color" validate:"required,enum"`
	Season      []Season   `json:"season" validate:"required,dive,enum"`
	Occasion    []Occasion `json:"occasion" validate:"required,dive,enum"`
	Brand       *string    `json:"brand"`
	Favorite    bool       `json:"favorite"`
	LastWorn    *Timestamp `json:"lastWorn"`
	CreatedAt   Timestamp  `json:"createdAt"`
}

// ItemPatch is a partial update. A nil field is left unchanged, and so is a field
// sent as JSON null: the two cannot be told apart, so null never clears a value.
// For the slice fields nil means unset while an empty slice is a real value.
type ItemPatch struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	Category    *Category  `json:"category" validate:"omitempty,enum"`
	Color       *Color     `json:"color" validate:"omitempty,enum"`
	Season      []Season   `json:"season" validate:"omitempty,dive,enum"`
	Occasion    []Occasion `json:"occasion" validate:"omitempty,dive,enum"`
	Brand       *string    `json:"brand"`
	Favorite    *bool      `json:"favorite"`
	LastWorn    *Timestamp `json:"lastWorn"`
}

// Apply merges the set fields of p into item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Season != nil {
		item.Season = p.Season
	}
	if p.Occasion != nil {
		item.Occasion = p.Occasion
	}
	if p.Brand != nil {
		item.Brand = p.Brand
	}
	if p.Favorite != nil {
		item.Favorite = *p.Favorite
	}
	if p.LastWorn != nil {
		item.LastWorn = p.LastWorn
	}
}
