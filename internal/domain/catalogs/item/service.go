package item

import (
	"context"
	"fmt"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/core/tx"
	"tuldokpos/pkg/logger"
)

// Service provides business logic for the inventory catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new inventory item service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new inventory item.
func (s *Service) Create(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, item.Name, id.Nil())
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("item", "name", item.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, item)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "inventory item created", "id", item.ID, "name", item.Name)
	return nil
}

// GetByID retrieves an item by ID.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// Update modifies an existing item.
func (s *Service) Update(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, item.Name, item.ID)
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("item", "name", item.Name)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, item)
	})
}

// Delete removes an item from the catalog. Existing sales keep their
// price snapshots; stock history is not adjusted.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
}

// List retrieves all items ordered by name.
func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}
