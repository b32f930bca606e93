package domain

import (
	"time"

	"github.com/google/uuid"
)

// UncategorizedName is the bucket used for gear without a category when
// grouping gear by category name.
const UncategorizedName = "Uncategorized"

// Category is a named gear classification shared by gear items and the catalog.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
}

// GearItem is a physical item owned by a user.
// CategoryName is resolved by the repo from CategoryID and is empty when the
// item has no category.
type GearItem struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Description  string
	CategoryID   *uuid.UUID
	CategoryName string
	WeightGrams  *int
	PurchaseDate *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryKey returns the name used to group the item by category.
func (g GearItem) CategoryKey() string {
	if g.CategoryID == nil || g.CategoryName == "" {
		return UncategorizedName
	}
	return g.CategoryName
}
