package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/domain/reports"
)

// SalesReportQuery holds the report query parameters. Dates are
// calendar days in "2006-01-02" form.
type SalesReportQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ToFilter parses the query into a domain filter.
func (q *SalesReportQuery) ToFilter() (reports.SalesReportFilter, error) {
	var filter reports.SalesReportFilter

	if q.From != "" {
		from, err := time.Parse(time.DateOnly, q.From)
		if err != nil {
			return filter, apperror.NewValidation("invalid from date").
				WithDetail("field", "from").
				WithDetail("value", q.From)
		}
		filter.FromDate = from
	}
	if q.To != "" {
		to, err := time.Parse(time.DateOnly, q.To)
		if err != nil {
			return filter, apperror.NewValidation("invalid to date").
				WithDetail("field", "to").
				WithDetail("value", q.To)
		}
		filter.ToDate = to
	}

	return filter, nil
}

// SalesReportResponse is the response body for the sales report.
type SalesReportResponse struct {
	// empty when the report covers the full history
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`

	OpenCount   int             `json:"open_count"`
	ClosedCount int             `json:"closed_count"`
	OpenTotal   decimal.Decimal `json:"open_total"`
	ClosedTotal decimal.Decimal `json:"closed_total"`
	GrandTotal  decimal.Decimal `json:"grand_total"`

	Payments []reports.PaymentSummary `json:"payments"`
	Items    []reports.LineSummary    `json:"items"`
	Services []reports.LineSummary    `json:"services"`

	FreebieQty int `json:"freebie_qty"`

	OpenSales   []*SaleResponse `json:"open_sales"`
	ClosedSales []*SaleResponse `json:"closed_sales"`
}

// FromSalesReport creates a response DTO from a domain report.
func FromSalesReport(r *reports.SalesReport) *SalesReportResponse {
	return &SalesReportResponse{
		FromDate:    formatDay(r.FromDate),
		ToDate:      formatDay(r.ToDate),
		OpenCount:   r.OpenCount,
		ClosedCount: r.ClosedCount,
		OpenTotal:   r.OpenTotal,
		ClosedTotal: r.ClosedTotal,
		GrandTotal:  r.GrandTotal,
		Payments:    r.Payments,
		Items:       r.Items,
		Services:    r.Services,
		FreebieQty:  r.FreebieQty,
		OpenSales:   FromSales(r.OpenSales),
		ClosedSales: FromSales(r.ClosedSales),
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
