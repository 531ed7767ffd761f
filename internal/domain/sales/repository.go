package sales

import (
	"context"

	"tuldokpos/internal/core/id"
	"tuldokpos/pkg/numerator"
)

// Repository persists sales across the two collections. Implementations
// return apperror.NewNotFound for missing rows and apperror.NewDuplicate
// for invoice number collisions.
type Repository interface {
	InsertOpen(ctx context.Context, sale *Sale) error
	GetOpen(ctx context.Context, saleID id.ID) (*Sale, error)
	UpdateOpen(ctx context.Context, sale *Sale) error
	DeleteOpen(ctx context.Context, saleID id.ID) error
	ListOpen(ctx context.Context) ([]*Sale, error)
	OpenInvoiceExists(ctx context.Context, invoiceNumber string) (bool, error)

	InsertClosed(ctx context.Context, sale *Sale) error
	GetClosed(ctx context.Context, saleID id.ID) (*Sale, error)
	DeleteClosed(ctx context.Context, saleID id.ID) error
	ListClosed(ctx context.Context) ([]*Sale, error)

	// MaxInvoiceSuffix returns the highest numeric invoice suffix with
	// the given prefix across both collections, or 0 when none exist.
	MaxInvoiceSuffix(ctx context.Context, prefix string) (int64, error)
}

// InvoiceNumberer issues formatted invoice numbers from a persistent
// counter. Satisfied by numerator.Service.
type InvoiceNumberer interface {
	NextAtLeast(ctx context.Context, config numerator.Config, floor int64) (string, error)
}

// AuditAction names a recorded lifecycle event.
type AuditAction string

const (
	AuditCreated  AuditAction = "created"
	AuditUpdated  AuditAction = "updated"
	AuditDeleted  AuditAction = "deleted"
	AuditPaid     AuditAction = "paid"
	AuditReverted AuditAction = "reverted"
)

// Auditor records sale lifecycle events. Recording is best-effort:
// failures are logged by the caller, never surfaced to the client.
type Auditor interface {
	Record(ctx context.Context, action AuditAction, sale *Sale) error
}
