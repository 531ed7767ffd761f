package item

import (
	"context"

	"tuldokpos/internal/core/id"
)

// Repository defines the interface for inventory item persistence.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)
	GetByName(ctx context.Context, name string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, itemID id.ID) error

	// List retrieves all items ordered by name.
	List(ctx context.Context) ([]*Item, error)

	// ExistsByName checks if an item with the given name exists,
	// excluding excludeID (pass id.Nil() for no exclusion).
	ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error)

	// DecrementStock reduces on-hand stock by qty. Returns the number of
	// rows affected so callers can detect a missing item.
	DecrementStock(ctx context.Context, itemID id.ID, qty int) (int64, error)

	// DecrementStockByName is the name-keyed variant used for lines that
	// carry only a name snapshot.
	DecrementStockByName(ctx context.Context, name string, qty int) (int64, error)
}
