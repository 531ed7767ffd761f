// Package sale_repo provides the PostgreSQL repository for sales,
// covering both the open and the closed collection.
package sale_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/domain/reports"
	"tuldokpos/internal/domain/sales"
	"tuldokpos/internal/infrastructure/storage/postgres"
	"tuldokpos/pkg/numerator"
)

const (
	openTable   = "open_sales"
	closedTable = "closed_sales"
)

var (
	openColumns   = []string{"id", "invoice_number", "items", "created_at"}
	closedColumns = []string{"id", "invoice_number", "items", "created_at", "paid_at", "paid_using"}
)

// SaleRepo implements sales.Repository and reports.Repository.
type SaleRepo struct {
	txManager *postgres.TxManager
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{txManager: txManager}
}

var (
	_ sales.Repository   = (*SaleRepo)(nil)
	_ reports.Repository = (*SaleRepo)(nil)
)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// InsertOpen inserts a sale into the open collection.
func (r *SaleRepo) InsertOpen(ctx context.Context, sale *sales.Sale) error {
	q := builder().
		Insert(openTable).
		Columns(openColumns...).
		Values(sale.ID, sale.InvoiceNumber, sale.Items, sale.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("sale", "invoice_number", sale.InvoiceNumber)
		}
		return fmt.Errorf("insert open sale: %w", err)
	}

	return nil
}

// GetOpen retrieves an open sale by ID.
func (r *SaleRepo) GetOpen(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	return r.get(ctx, openTable, openColumns, saleID)
}

// UpdateOpen replaces the line items of an open sale.
func (r *SaleRepo) UpdateOpen(ctx context.Context, sale *sales.Sale) error {
	q := builder().
		Update(openTable).
		Set("items", sale.Items).
		Where(squirrel.Eq{"id": sale.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update open sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", sale.ID)
	}

	return nil
}

// DeleteOpen removes an open sale.
func (r *SaleRepo) DeleteOpen(ctx context.Context, saleID id.ID) error {
	return r.delete(ctx, openTable, saleID)
}

// ListOpen retrieves all open sales, newest first.
func (r *SaleRepo) ListOpen(ctx context.Context) ([]*sales.Sale, error) {
	return r.list(ctx, openTable, openColumns, "created_at DESC")
}

// OpenInvoiceExists checks whether an open sale carries the invoice
// number.
func (r *SaleRepo) OpenInvoiceExists(ctx context.Context, invoiceNumber string) (bool, error) {
	q := builder().
		Select("1").
		From(openTable).
		Where(squirrel.Eq{"invoice_number": invoiceNumber}).
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
		return false, fmt.Errorf("check invoice number: %w", err)
	}

	return true, nil
}

// InsertClosed inserts a sale into the closed collection.
func (r *SaleRepo) InsertClosed(ctx context.Context, sale *sales.Sale) error {
	q := builder().
		Insert(closedTable).
		Columns(closedColumns...).
		Values(sale.ID, sale.InvoiceNumber, sale.Items, sale.CreatedAt, sale.PaidAt, sale.PaidUsing)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("sale", "invoice_number", sale.InvoiceNumber)
		}
		return fmt.Errorf("insert closed sale: %w", err)
	}

	return nil
}

// GetClosed retrieves a closed sale by ID.
func (r *SaleRepo) GetClosed(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	return r.get(ctx, closedTable, closedColumns, saleID)
}

// DeleteClosed removes a closed sale.
func (r *SaleRepo) DeleteClosed(ctx context.Context, saleID id.ID) error {
	return r.delete(ctx, closedTable, saleID)
}

// ListClosed retrieves all closed sales, most recently paid first.
func (r *SaleRepo) ListClosed(ctx context.Context) ([]*sales.Sale, error) {
	return r.list(ctx, closedTable, closedColumns, "paid_at DESC")
}

// MaxInvoiceSuffix scans both collections for the highest numeric
// invoice suffix with the given prefix.
func (r *SaleRepo) MaxInvoiceSuffix(ctx context.Context, prefix string) (int64, error) {
	var max int64
	for _, table := range []string{openTable, closedTable} {
		n, err := r.maxSuffix(ctx, table, prefix)
		if err != nil {
			return 0, err
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *SaleRepo) maxSuffix(ctx context.Context, table, prefix string) (int64, error) {
	q := builder().
		Select("invoice_number").
		From(table).
		Where(squirrel.Like{"invoice_number": prefix + "-%"})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var numbers []string
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &numbers, sql, args...); err != nil {
		return 0, fmt.Errorf("scan invoice numbers: %w", err)
	}

	var max int64
	for _, number := range numbers {
		if n := numerator.ParseSuffix(prefix, number); n > max {
			max = n
		}
	}
	return max, nil
}

// OpenSalesInRange retrieves open sales created within [from, to).
func (r *SaleRepo) OpenSalesInRange(ctx context.Context, from, to time.Time) ([]*sales.Sale, error) {
	return r.listInRange(ctx, openTable, openColumns, from, to)
}

// ClosedSalesInRange retrieves closed sales created within [from, to).
func (r *SaleRepo) ClosedSalesInRange(ctx context.Context, from, to time.Time) ([]*sales.Sale, error) {
	return r.listInRange(ctx, closedTable, closedColumns, from, to)
}

func (r *SaleRepo) get(ctx context.Context, table string, columns []string, saleID id.ID) (*sales.Sale, error) {
	q := builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	return &sale, nil
}

func (r *SaleRepo) delete(ctx context.Context, table string, saleID id.ID) error {
	q := builder().Delete(table).Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", saleID)
	}

	return nil
}

func (r *SaleRepo) list(ctx context.Context, table string, columns []string, orderBy string) ([]*sales.Sale, error) {
	q := builder().
		Select(columns...).
		From(table).
		OrderBy(orderBy)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var list []*sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return list, nil
}

// listInRange fetches sales created within [from, to). Zero bounds are
// left off the query, so a zero/zero call returns the full collection.
func (r *SaleRepo) listInRange(ctx context.Context, table string, columns []string, from, to time.Time) ([]*sales.Sale, error) {
	q := builder().
		Select(columns...).
		From(table).
		OrderBy("created_at")
	if !from.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": from})
	}
	if !to.IsZero() {
		q = q.Where(squirrel.Lt{"created_at": to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var list []*sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales in range: %w", err)
	}

	return list, nil
}
