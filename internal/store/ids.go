package store

import "github.com/google/uuid"

// NewItemID returns an opaque, stable item id. IDs are the only join key that
// survives reorders; they never change after creation.
func NewItemID() string {
	return "item-" + uuid.NewString()
}
