package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/domain/catalogs/item"
)

// CreateItemRequest is the request body for creating an inventory item.
type CreateItemRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Classification string          `json:"classification"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateItemRequest) ToEntity() *item.Item {
	return item.NewItem(r.Name, r.Price, r.Stock, r.Classification)
}

// UpdateItemRequest is the request body for updating an inventory item.
type UpdateItemRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Classification string          `json:"classification"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateItemRequest) ApplyTo(it *item.Item) {
	it.Name = r.Name
	it.Price = r.Price
	it.Stock = r.Stock
	it.Classification = r.Classification
}

// ItemResponse is the response body for an inventory item.
type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Classification string          `json:"classification,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// FromItem creates a response DTO from a domain entity.
func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:             it.ID.String(),
		Name:           it.Name,
		Price:          it.Price,
		Stock:          it.Stock,
		Classification: it.Classification,
		CreatedAt:      it.CreatedAt,
	}
}

// FromItems maps a list of items.
func FromItems(items []*item.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}
