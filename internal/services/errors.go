package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUserNotFound         = errors.New("user not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrOutfitNotFound       = errors.New("outfit not found")
	ErrInvalidItemReference = errors.New("invalid item reference")
)

// ItemReferenceError names the first outfit item id that does not belong to the user.
type ItemReferenceError struct {
	ItemID string
}

func (e *ItemReferenceError) Error() string {
	return fmt.Sprintf("item %s not found", e.ItemID)
}

func (e *ItemReferenceError) Unwrap() error {
	return ErrInvalidItemReference
}
