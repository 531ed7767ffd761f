package service_def

import (
	"context"

	"tuldokpos/internal/core/id"
)

// Repository defines the interface for service definition persistence.
type Repository interface {
	Create(ctx context.Context, def *ServiceDef) error
	GetByID(ctx context.Context, defID id.ID) (*ServiceDef, error)
	Update(ctx context.Context, def *ServiceDef) error
	Delete(ctx context.Context, defID id.ID) error

	// List retrieves all service definitions ordered by name.
	List(ctx context.Context) ([]*ServiceDef, error)

	// ExistsByName checks if a definition with the given name exists,
	// excluding excludeID (pass id.Nil() for no exclusion).
	ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error)
}
