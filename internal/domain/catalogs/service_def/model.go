// Package service_def provides the service definition catalog.
// A service definition is a sellable service with a price and a list of
// inventory classifications whose items may accompany it for free.
package service_def

import (
	"context"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/entity"
)

// ServiceDef represents a sellable service.
type ServiceDef struct {
	entity.Catalog

	// Price is the service price (non-negative)
	Price decimal.Decimal `db:"price" json:"price"`

	// Freebies lists the inventory classifications eligible as
	// complimentary items for this service. Stored as JSONB.
	Freebies []string `db:"freebies" json:"freebies"`
}

// NewServiceDef creates a new service definition.
func NewServiceDef(name string, price decimal.Decimal, freebies []string) *ServiceDef {
	if freebies == nil {
		freebies = []string{}
	}
	return &ServiceDef{
		Catalog:  entity.NewCatalog(name),
		Price:    price,
		Freebies: freebies,
	}
}

// Validate implements entity.Validatable.
func (s *ServiceDef) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	for i, cls := range s.Freebies {
		if cls == "" {
			return apperror.NewValidation("freebie classification cannot be empty").
				WithDetail("field", "freebies").
				WithDetail("index", i)
		}
	}

	return nil
}
