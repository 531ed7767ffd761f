package sales

import (
	"context"
	"fmt"
	"time"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/core/tx"
	"tuldokpos/internal/domain/catalogs/item"
	"tuldokpos/pkg/logger"
	"tuldokpos/pkg/numerator"
)

// InvoiceConfig is the counter configuration for invoice numbers
// ("INV-0001").
var InvoiceConfig = numerator.DefaultConfig("INV")

// Service drives the sale lifecycle. Every state transition runs in a
// single transaction; a sale is never observable in both collections or
// in neither.
type Service struct {
	repo      Repository
	items     item.Repository
	txManager tx.Manager
	invoices  InvoiceNumberer
	auditor   Auditor
}

// NewService creates a new sale lifecycle service. auditor may be nil.
func NewService(repo Repository, items item.Repository, txManager tx.Manager, invoices InvoiceNumberer, auditor Auditor) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
		invoices:  invoices,
		auditor:   auditor,
	}
}

// CreateOpen creates an open sale and decrements inventory stock for
// every purchased item line, atomically. Derived freebie lines are
// rebuilt from the allocations first and never touch stock.
func (s *Service) CreateOpen(ctx context.Context, invoiceNumber string, items LineItems) (*Sale, error) {
	sale := NewOpenSale(invoiceNumber, Normalize(items))
	if err := sale.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.repo.OpenInvoiceExists(ctx, sale.InvoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("check invoice number: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("sale", "invoice_number", sale.InvoiceNumber)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertOpen(ctx, sale); err != nil {
			return err
		}
		return s.decrementStock(ctx, sale.Items)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, AuditCreated, sale)
	logger.Info(ctx, "open sale created",
		"id", sale.ID, "invoiceNumber", sale.InvoiceNumber, "total", sale.Total())
	return sale, nil
}

// decrementStock applies the stock effect of purchased item lines.
// Only freebie lines are skipped; a paid line whose inventory row is
// missing fails the whole sale.
func (s *Service) decrementStock(ctx context.Context, items LineItems) error {
	for _, li := range items {
		if li.Kind != LineKindItem || li.Freebie {
			continue
		}

		var (
			affected int64
			err      error
		)
		if li.RefID != nil && !id.IsNil(*li.RefID) {
			affected, err = s.items.DecrementStock(ctx, *li.RefID, li.Qty)
		} else {
			affected, err = s.items.DecrementStockByName(ctx, li.ItemName, li.Qty)
		}
		if err != nil {
			return fmt.Errorf("decrement stock for %q: %w", li.ItemName, err)
		}
		if affected == 0 {
			return apperror.NewNotFound("item", li.ItemName)
		}
	}
	return nil
}

// UpdateOpen replaces the line items of an open sale. Stock is not
// reconciled against the previous line set; the decrement happens only
// at creation.
func (s *Service) UpdateOpen(ctx context.Context, saleID id.ID, items LineItems) (*Sale, error) {
	sale, err := s.repo.GetOpen(ctx, saleID)
	if err != nil {
		return nil, err
	}

	sale.Items = Normalize(items)
	if err := sale.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.UpdateOpen(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, AuditUpdated, sale)
	return sale, nil
}

// DeleteOpen removes an open sale. Stock consumed at creation is not
// restored.
func (s *Service) DeleteOpen(ctx context.Context, saleID id.ID) error {
	sale, err := s.repo.GetOpen(ctx, saleID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteOpen(ctx, saleID)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, AuditDeleted, sale)
	return nil
}

// Pay closes an open sale: the payment method and timestamp are stamped
// and the sale moves from the open to the closed collection in one
// transaction.
func (s *Service) Pay(ctx context.Context, saleID id.ID, paidUsing string) (*Sale, error) {
	if paidUsing == "" {
		return nil, apperror.NewValidation("payment method is required").
			WithDetail("field", "paid_using")
	}

	var closed *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		open, err := s.repo.GetOpen(ctx, saleID)
		if err != nil {
			return err
		}

		closed = open.Close(paidUsing, time.Now().UTC())
		if err := s.repo.InsertClosed(ctx, closed); err != nil {
			return err
		}
		return s.repo.DeleteOpen(ctx, saleID)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, AuditPaid, closed)
	logger.Info(ctx, "sale paid",
		"id", closed.ID, "invoiceNumber", closed.InvoiceNumber, "paidUsing", paidUsing)
	return closed, nil
}

// Revert reopens a closed sale: payment stamps are dropped and the sale
// moves back to the open collection in one transaction. Inverse of Pay.
func (s *Service) Revert(ctx context.Context, saleID id.ID) (*Sale, error) {
	var open *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		closed, err := s.repo.GetClosed(ctx, saleID)
		if err != nil {
			return err
		}

		open = closed.Reopen()
		if err := s.repo.InsertOpen(ctx, open); err != nil {
			return err
		}
		return s.repo.DeleteClosed(ctx, saleID)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, AuditReverted, open)
	logger.Info(ctx, "sale reverted",
		"id", open.ID, "invoiceNumber", open.InvoiceNumber)
	return open, nil
}

// DeleteClosed removes a closed sale permanently.
func (s *Service) DeleteClosed(ctx context.Context, saleID id.ID) error {
	sale, err := s.repo.GetClosed(ctx, saleID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteClosed(ctx, saleID)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, AuditDeleted, sale)
	return nil
}

// GetOpen retrieves an open sale by ID.
func (s *Service) GetOpen(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetOpen(ctx, saleID)
}

// GetClosed retrieves a closed sale by ID.
func (s *Service) GetClosed(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetClosed(ctx, saleID)
}

// ListOpen retrieves all open sales, newest first.
func (s *Service) ListOpen(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListOpen(ctx)
}

// ListClosed retrieves all closed sales, newest first.
func (s *Service) ListClosed(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListClosed(ctx)
}

// NextInvoiceNumber issues the next invoice number. The counter is
// floored at one past the highest suffix present in either collection,
// so hand-assigned numbers can never collide with issued ones.
func (s *Service) NextInvoiceNumber(ctx context.Context) (string, error) {
	max, err := s.repo.MaxInvoiceSuffix(ctx, InvoiceConfig.Prefix)
	if err != nil {
		return "", fmt.Errorf("scan invoice suffixes: %w", err)
	}
	return s.invoices.NextAtLeast(ctx, InvoiceConfig, max+1)
}

func (s *Service) audit(ctx context.Context, action AuditAction, sale *Sale) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, action, sale); err != nil {
		logger.Warn(ctx, "sale audit record failed",
			"action", string(action), "id", sale.ID, "error", err)
	}
}
