package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/domain/catalogs/service_def"
	"tuldokpos/internal/infrastructure/storage/postgres"
)

const serviceTable = "services"

var serviceColumns = []string{"id", "name", "price", "freebies", "created_at"}

// ServiceDefRepo implements service_def.Repository.
type ServiceDefRepo struct {
	txManager *postgres.TxManager
}

// NewServiceDefRepo creates a new service definition repository.
func NewServiceDefRepo(txManager *postgres.TxManager) *ServiceDefRepo {
	return &ServiceDefRepo{txManager: txManager}
}

var _ service_def.Repository = (*ServiceDefRepo)(nil)

func (r *ServiceDefRepo) baseSelect() squirrel.SelectBuilder {
	return builder().Select(serviceColumns...).From(serviceTable)
}

// Create inserts a new service definition.
func (r *ServiceDefRepo) Create(ctx context.Context, svc *service_def.ServiceDef) error {
	q := builder().
		Insert(serviceTable).
		Columns(serviceColumns...).
		Values(svc.ID, svc.Name, svc.Price, svc.Freebies, svc.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("service", "name", svc.Name)
		}
		return fmt.Errorf("insert service: %w", err)
	}

	return nil
}

// GetByID retrieves a service definition by ID.
func (r *ServiceDefRepo) GetByID(ctx context.Context, svcID id.ID) (*service_def.ServiceDef, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": svcID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var svc service_def.ServiceDef
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &svc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("service", svcID)
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	return &svc, nil
}

// Update modifies an existing service definition.
func (r *ServiceDefRepo) Update(ctx context.Context, svc *service_def.ServiceDef) error {
	q := builder().
		Update(serviceTable).
		Set("name", svc.Name).
		Set("price", svc.Price).
		Set("freebies", svc.Freebies).
		Where(squirrel.Eq{"id": svc.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("service", "name", svc.Name)
		}
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("service", svc.ID)
	}

	return nil
}

// Delete removes a service definition.
func (r *ServiceDefRepo) Delete(ctx context.Context, svcID id.ID) error {
	q := builder().Delete(serviceTable).Where(squirrel.Eq{"id": svcID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("service", svcID)
	}

	return nil
}

// List retrieves all service definitions ordered by name.
func (r *ServiceDefRepo) List(ctx context.Context) ([]*service_def.ServiceDef, error) {
	q := r.baseSelect().OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var svcs []*service_def.ServiceDef
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &svcs, sql, args...); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	return svcs, nil
}

// ExistsByName checks name uniqueness, excluding excludeID.
func (r *ServiceDefRepo) ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	q := builder().
		Select("1").
		From(serviceTable).
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
