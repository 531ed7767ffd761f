// Package item provides the inventory item catalog.
package item

import (
	"context"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/entity"
)

// Item represents a stocked inventory item.
type Item struct {
	entity.Catalog

	// Price is the unit price (non-negative)
	Price decimal.Decimal `db:"price" json:"price"`

	// Stock is the on-hand count. It is decremented as a side effect of
	// sale creation and may go negative; the catalog does not block
	// overselling.
	Stock int `db:"stock" json:"stock"`

	// Classification groups items for freebie eligibility matching
	// (free text, optional)
	Classification string `db:"classification" json:"classification,omitempty"`
}

// NewItem creates a new inventory item.
func NewItem(name string, price decimal.Decimal, stock int, classification string) *Item {
	return &Item{
		Catalog:        entity.NewCatalog(name),
		Price:          price,
		Stock:          stock,
		Classification: classification,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	return nil
}
