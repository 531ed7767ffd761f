// Package catalog_repo provides PostgreSQL repositories for the
// catalogs: inventory items and service definitions.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/domain/catalogs/item"
	"tuldokpos/internal/infrastructure/storage/postgres"
)

const itemTable = "inventory"

var itemColumns = []string{"id", "name", "price", "stock", "classification", "created_at"}

// ItemRepo implements item.Repository.
type ItemRepo struct {
	txManager *postgres.TxManager
}

// NewItemRepo creates a new inventory item repository.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{txManager: txManager}
}

var _ item.Repository = (*ItemRepo)(nil)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ItemRepo) baseSelect() squirrel.SelectBuilder {
	return builder().Select(itemColumns...).From(itemTable)
}

// Create inserts a new item.
func (r *ItemRepo) Create(ctx context.Context, it *item.Item) error {
	q := builder().
		Insert(itemTable).
		Columns(itemColumns...).
		Values(it.ID, it.Name, it.Price, it.Stock, it.Classification, it.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("item", "name", it.Name)
		}
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID.
func (r *ItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemID)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &it, nil
}

// GetByName retrieves an item by its unique name.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*item.Item, error) {
	q := r.baseSelect().Where(squirrel.Eq{"name": name})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}

	return &it, nil
}

// Update modifies an existing item.
func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	q := builder().
		Update(itemTable).
		Set("name", it.Name).
		Set("price", it.Price).
		Set("stock", it.Stock).
		Set("classification", it.Classification).
		Where(squirrel.Eq{"id": it.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("item", "name", it.Name)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("item", it.ID)
	}

	return nil
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := builder().Delete(itemTable).Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID)
	}

	return nil
}

// List retrieves all items ordered by name.
func (r *ItemRepo) List(ctx context.Context) ([]*item.Item, error) {
	q := r.baseSelect().OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

// ExistsByName checks name uniqueness, excluding excludeID.
func (r *ItemRepo) ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	q := builder().
		Select("1").
		From(itemTable).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.NotEq{"id": excludeID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check name: %w", err)
	}

	return true, nil
}

// DecrementStock reduces on-hand stock by qty, keyed by id.
func (r *ItemRepo) DecrementStock(ctx context.Context, itemID id.ID, qty int) (int64, error) {
	return r.decrement(ctx, squirrel.Eq{"id": itemID}, qty)
}

// DecrementStockByName reduces on-hand stock by qty, keyed by name.
func (r *ItemRepo) DecrementStockByName(ctx context.Context, name string, qty int) (int64, error) {
	return r.decrement(ctx, squirrel.Eq{"name": name}, qty)
}

func (r *ItemRepo) decrement(ctx context.Context, pred squirrel.Eq, qty int) (int64, error) {
	q := builder().
		Update(itemTable).
		Set("stock", squirrel.Expr("stock - ?", qty)).
		Where(pred)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	return tag.RowsAffected(), nil
}
