package reports

import (
	"context"
	"time"

	"tuldokpos/internal/domain/sales"
)

// Repository defines report data access. Implementations filter on the
// sale creation time within the half-open range [from, to); a zero
// bound is treated as unbounded on that side.
type Repository interface {
	OpenSalesInRange(ctx context.Context, from, to time.Time) ([]*sales.Sale, error)
	ClosedSalesInRange(ctx context.Context, from, to time.Time) ([]*sales.Sale, error)
}
