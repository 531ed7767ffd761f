// Package sales provides the sale lifecycle: open sales, the transition
// to closed (paid) sales and back, and the freebie allocation rules for
// service line items.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/entity"
	"tuldokpos/internal/core/id"
)

// LineKind discriminates the two line item variants.
type LineKind string

const (
	// LineKindItem references an inventory item
	LineKindItem LineKind = "item"
	// LineKindService references a service definition
	LineKindService LineKind = "service"
)

// LineItem is one entry in a sale. It is a tagged union: Kind selects
// which field set applies. Name and price are snapshots taken at sale
// time; later catalog edits never affect existing sales.
type LineItem struct {
	Kind LineKind `json:"type"`

	// Item lines. RefID is the inventory reference used for the stock
	// decrement; lines derived from freebie choices carry only the name
	// snapshot.
	RefID    *id.ID `json:"ref_id,omitempty"`
	ItemName string `json:"item_name,omitempty"`

	// Service lines
	ServiceName string `json:"service_name,omitempty"`

	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`

	// Freebie marks item lines derived from a freebie choice. Derived
	// lines are recomputed from the allocations on every save.
	Freebie bool `json:"freebie,omitempty"`

	// Freebies holds the allocation slots of a service line, one per
	// eligible classification.
	Freebies []FreebieAllocation `json:"freebies,omitempty"`
}

// Name returns the snapshot name of the referenced catalog entry.
func (li LineItem) Name() string {
	if li.Kind == LineKindService {
		return li.ServiceName
	}
	return li.ItemName
}

// Amount returns price × qty for this line.
func (li LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// Validate checks the line item invariants. lineNo is reported in error
// details (1-based).
func (li LineItem) Validate(lineNo int) error {
	switch li.Kind {
	case LineKindItem:
		if li.ItemName == "" {
			return apperror.NewValidation("item name is required").
				WithDetail("field", "items").
				WithDetail("lineNo", lineNo)
		}
		if len(li.Freebies) > 0 {
			return apperror.NewValidation("item lines cannot carry freebie allocations").
				WithDetail("field", "items").
				WithDetail("lineNo", lineNo)
		}
	case LineKindService:
		if li.ServiceName == "" {
			return apperror.NewValidation("service name is required").
				WithDetail("field", "items").
				WithDetail("lineNo", lineNo)
		}
		for _, alloc := range li.Freebies {
			if err := alloc.validate(lineNo, li.Qty); err != nil {
				return err
			}
		}
	default:
		return apperror.NewValidation("unknown line item type").
			WithDetail("field", "items").
			WithDetail("lineNo", lineNo).
			WithDetail("type", string(li.Kind))
	}

	if li.Qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "items").
			WithDetail("lineNo", lineNo)
	}
	if li.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "items").
			WithDetail("lineNo", lineNo)
	}

	return nil
}

// LineItems is the ordered line list of a sale, persisted as a JSONB blob.
type LineItems []LineItem

// Total returns Σ price × qty over all lines. Zero-price freebie lines
// contribute nothing.
func (items LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount())
	}
	return total
}

// FreebieQty returns the total quantity of all freebie choice entries
// across all service lines.
func (items LineItems) FreebieQty() int {
	total := 0
	for _, li := range items {
		for _, alloc := range li.Freebies {
			total += alloc.Used()
		}
	}
	return total
}

// Sale is an invoice. It lives in exactly one of two collections: open
// (unpaid, PaidAt/PaidUsing nil) or closed (paid). Moving between them
// preserves the id, invoice number, line items and CreatedAt.
type Sale struct {
	// ID is the internal primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// InvoiceNumber is the human-facing identifier ("INV-0001")
	InvoiceNumber string `db:"invoice_number" json:"invoice_number"`

	// Items is the ordered line list (JSONB)
	Items LineItems `db:"items" json:"items"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	PaidAt    *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	PaidUsing *string    `db:"paid_using" json:"paid_using,omitempty"`
}

// NewOpenSale creates a new open sale with generated ID and timestamp.
func NewOpenSale(invoiceNumber string, items LineItems) *Sale {
	return &Sale{
		ID:            id.New(),
		InvoiceNumber: invoiceNumber,
		Items:         items,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if s.InvoiceNumber == "" {
		return apperror.NewValidation("invoice number is required").
			WithDetail("field", "invoice_number")
	}

	if len(s.Items) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "items")
	}

	for i, li := range s.Items {
		if err := li.Validate(i + 1); err != nil {
			return err
		}
	}

	return nil
}

// Total returns the sale total.
func (s *Sale) Total() decimal.Decimal {
	return s.Items.Total()
}

// IsClosed reports whether the sale carries payment stamps.
func (s *Sale) IsClosed() bool {
	return s.PaidAt != nil
}

// Close returns a closed copy of the sale, stamping paid_at and
// paid_using. ID, invoice number, items and created_at carry over
// unchanged.
func (s *Sale) Close(paidUsing string, paidAt time.Time) *Sale {
	closed := *s
	closed.PaidAt = &paidAt
	closed.PaidUsing = &paidUsing
	return &closed
}

// Reopen returns an open copy of the sale with the payment stamps
// nulled. Inverse of Close modulo the paid_at timestamp.
func (s *Sale) Reopen() *Sale {
	open := *s
	open.PaidAt = nil
	open.PaidUsing = nil
	return &open
}

var _ entity.Validatable = (*Sale)(nil)
