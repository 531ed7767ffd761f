package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/tx"
	"tuldokpos/internal/domain/sales"
)

// Service provides report generation operations. Aggregation happens
// here, not in SQL: line items live inside a JSONB blob, so the rows
// are fetched per collection and rolled up in memory.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// GetSalesReport aggregates all sales whose creation time falls within
// the filter's calendar-day range, inclusive on both ends. When either
// bound is absent no filtering is applied and the report covers the
// full history.
func (s *Service) GetSalesReport(ctx context.Context, filter SalesReportFilter) (*SalesReport, error) {
	var from, to time.Time
	if !filter.FromDate.IsZero() && !filter.ToDate.IsZero() {
		from = startOfDay(filter.FromDate)
		to = startOfDay(filter.ToDate).AddDate(0, 0, 1)
		if to.Before(from) {
			return nil, apperror.NewValidation("from_date must not be after to_date").
				WithDetail("from_date", filter.FromDate.Format(time.DateOnly)).
				WithDetail("to_date", filter.ToDate.Format(time.DateOnly))
		}
	}

	// both collections read in one snapshot so a concurrent Pay cannot
	// show the same sale twice (or drop it entirely)
	var open, closed []*sales.Sale
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if open, err = s.repo.OpenSalesInRange(ctx, from, to); err != nil {
			return fmt.Errorf("fetch open sales: %w", err)
		}
		if closed, err = s.repo.ClosedSalesInRange(ctx, from, to); err != nil {
			return fmt.Errorf("fetch closed sales: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		FromDate:    from,
		OpenCount:   len(open),
		ClosedCount: len(closed),
		OpenTotal:   sumSales(open),
		ClosedTotal: sumSales(closed),
		OpenSales:   open,
		ClosedSales: closed,
	}
	if !to.IsZero() {
		report.ToDate = to.AddDate(0, 0, -1)
	}
	report.GrandTotal = report.OpenTotal.Add(report.ClosedTotal)
	report.Payments = paymentSummaries(closed)

	all := make([]*sales.Sale, 0, len(open)+len(closed))
	all = append(all, open...)
	all = append(all, closed...)
	report.Items, report.Services = lineSummaries(all)
	for _, sale := range all {
		report.FreebieQty += sale.Items.FreebieQty()
	}

	return report, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sumSales(list []*sales.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range list {
		total = total.Add(sale.Total())
	}
	return total
}

func paymentSummaries(closed []*sales.Sale) []PaymentSummary {
	byMethod := make(map[string]*PaymentSummary)
	for _, sale := range closed {
		method := "unknown"
		if sale.PaidUsing != nil && *sale.PaidUsing != "" {
			method = *sale.PaidUsing
		}
		summary, ok := byMethod[method]
		if !ok {
			summary = &PaymentSummary{Method: method, Total: decimal.Zero}
			byMethod[method] = summary
		}
		summary.Count++
		summary.Total = summary.Total.Add(sale.Total())
	}

	out := make([]PaymentSummary, 0, len(byMethod))
	for _, summary := range byMethod {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

func lineSummaries(all []*sales.Sale) (items, services []LineSummary) {
	itemRollup := make(map[string]*LineSummary)
	serviceRollup := make(map[string]*LineSummary)

	for _, sale := range all {
		for _, li := range sale.Items {
			rollup := itemRollup
			if li.Kind == sales.LineKindService {
				rollup = serviceRollup
			}
			summary, ok := rollup[li.Name()]
			if !ok {
				summary = &LineSummary{Name: li.Name(), Amount: decimal.Zero}
				rollup[li.Name()] = summary
			}
			summary.Qty += li.Qty
			summary.Amount = summary.Amount.Add(li.Amount())
		}
	}

	return sortSummaries(itemRollup), sortSummaries(serviceRollup)
}

func sortSummaries(rollup map[string]*LineSummary) []LineSummary {
	out := make([]LineSummary, 0, len(rollup))
	for _, summary := range rollup {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
