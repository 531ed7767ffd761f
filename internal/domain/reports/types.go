// Package reports provides sales report generation.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/domain/sales"
)

// SalesReportFilter selects the reporting window. Both dates are
// calendar days; the range is inclusive on both ends and matched
// against the sale creation time. When either date is zero the report
// covers the full history.
type SalesReportFilter struct {
	FromDate time.Time
	ToDate   time.Time
}

// PaymentSummary groups closed sales by payment method.
type PaymentSummary struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// LineSummary is a per-name rollup over sale line items.
type LineSummary struct {
	Name   string          `json:"name"`
	Qty    int             `json:"qty"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesReport is the aggregated view of a reporting window.
type SalesReport struct {
	// FromDate and ToDate echo the effective window; both are zero for
	// an unfiltered full-history report.
	FromDate time.Time `json:"from_date,omitzero"`
	ToDate   time.Time `json:"to_date,omitzero"`

	OpenCount   int             `json:"open_count"`
	ClosedCount int             `json:"closed_count"`
	OpenTotal   decimal.Decimal `json:"open_total"`
	ClosedTotal decimal.Decimal `json:"closed_total"`
	GrandTotal  decimal.Decimal `json:"grand_total"`

	Payments []PaymentSummary `json:"payments"`
	Items    []LineSummary    `json:"items"`
	Services []LineSummary    `json:"services"`

	// FreebieQty counts units given away across all sales in range
	FreebieQty int `json:"freebie_qty"`

	OpenSales   []*sales.Sale `json:"open_sales"`
	ClosedSales []*sales.Sale `json:"closed_sales"`
}
