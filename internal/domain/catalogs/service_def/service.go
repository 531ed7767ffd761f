package service_def

import (
	"context"
	"fmt"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/core/tx"
	"tuldokpos/pkg/logger"
)

// Service provides business logic for the service definition catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new service definition service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new service definition.
func (s *Service) Create(ctx context.Context, def *ServiceDef) error {
	if err := def.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, def.Name, id.Nil())
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("service", "name", def.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, def)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "service definition created", "id", def.ID, "name", def.Name)
	return nil
}

// GetByID retrieves a definition by ID.
func (s *Service) GetByID(ctx context.Context, defID id.ID) (*ServiceDef, error) {
	return s.repo.GetByID(ctx, defID)
}

// Update modifies an existing definition. Sales created earlier keep
// their price snapshots.
func (s *Service) Update(ctx context.Context, def *ServiceDef) error {
	if err := def.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, def.Name, def.ID)
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("service", "name", def.Name)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, def)
	})
}

// Delete removes a definition from the catalog.
func (s *Service) Delete(ctx context.Context, defID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, defID)
	})
}

// List retrieves all definitions ordered by name.
func (s *Service) List(ctx context.Context) ([]*ServiceDef, error) {
	return s.repo.List(ctx)
}
