package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/domain/sales"
)

type fakeRepo struct {
	open   []*sales.Sale
	closed []*sales.Sale

	gotFrom, gotTo time.Time
}

func (r *fakeRepo) OpenSalesInRange(_ context.Context, from, to time.Time) ([]*sales.Sale, error) {
	r.gotFrom, r.gotTo = from, to
	return filterRange(r.open, from, to), nil
}

func (r *fakeRepo) ClosedSalesInRange(_ context.Context, from, to time.Time) ([]*sales.Sale, error) {
	return filterRange(r.closed, from, to), nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func filterRange(list []*sales.Sale, from, to time.Time) []*sales.Sale {
	var out []*sales.Sale
	for _, s := range list {
		if !from.IsZero() && s.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !s.CreatedAt.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func saleAt(invoice string, createdAt time.Time, items sales.LineItems) *sales.Sale {
	s := sales.NewOpenSale(invoice, items)
	s.CreatedAt = createdAt
	return s
}

func closedSaleAt(invoice string, createdAt time.Time, method string, items sales.LineItems) *sales.Sale {
	return saleAt(invoice, createdAt, items).Close(method, createdAt.Add(time.Hour))
}

func itemLine(name string, qty int, price int64) sales.LineItem {
	return sales.LineItem{
		Kind:     sales.LineKindItem,
		ItemName: name,
		Qty:      qty,
		Price:    decimal.NewFromInt(price),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetSalesReport_InclusiveDayBounds(t *testing.T) {
	repo := &fakeRepo{
		open: []*sales.Sale{
			saleAt("INV-0001", day(2026, 3, 1).Add(2*time.Minute), sales.LineItems{itemLine("Coke", 1, 5)}),
			saleAt("INV-0002", day(2026, 3, 3).Add(23*time.Hour+59*time.Minute), sales.LineItems{itemLine("Coke", 1, 5)}),
			saleAt("INV-0003", day(2026, 3, 4), sales.LineItems{itemLine("Coke", 1, 5)}),
		},
	}
	svc := NewService(repo, passthroughTx{})

	report, err := svc.GetSalesReport(context.Background(), SalesReportFilter{
		FromDate: day(2026, 3, 1).Add(15 * time.Hour), // time of day must not matter
		ToDate:   day(2026, 3, 3),
	})
	if err != nil {
		t.Fatalf("GetSalesReport failed: %v", err)
	}

	if report.OpenCount != 2 {
		t.Errorf("OpenCount = %d, want 2 (both boundary days included, next day excluded)", report.OpenCount)
	}
	if !repo.gotFrom.Equal(day(2026, 3, 1)) || !repo.gotTo.Equal(day(2026, 3, 4)) {
		t.Errorf("queried range [%v, %v), want [2026-03-01, 2026-03-04)", repo.gotFrom, repo.gotTo)
	}
}

func TestGetSalesReport_Totals(t *testing.T) {
	serviceItems := sales.LineItems{
		{Kind: sales.LineKindService, ServiceName: "Trim", Qty: 1, Price: decimal.NewFromInt(350)},
		{Kind: sales.LineKindItem, ItemName: "Palmolive", Qty: 2, Price: decimal.Zero, Freebie: true},
	}
	repo := &fakeRepo{
		open: []*sales.Sale{
			saleAt("INV-0001", day(2026, 3, 1), sales.LineItems{itemLine("Coke", 3, 5)}),
		},
		closed: []*sales.Sale{
			closedSaleAt("INV-0002", day(2026, 3, 1), "cash", serviceItems),
			closedSaleAt("INV-0003", day(2026, 3, 1), "gcash", sales.LineItems{itemLine("Coke", 2, 5)}),
			closedSaleAt("INV-0004", day(2026, 3, 1), "cash", sales.LineItems{itemLine("Sprite", 1, 7)}),
		},
	}
	svc := NewService(repo, passthroughTx{})

	report, err := svc.GetSalesReport(context.Background(), SalesReportFilter{FromDate: day(2026, 3, 1), ToDate: day(2026, 3, 1)})
	if err != nil {
		t.Fatalf("GetSalesReport failed: %v", err)
	}

	if !report.OpenTotal.Equal(decimal.NewFromInt(15)) {
		t.Errorf("OpenTotal = %s, want 15", report.OpenTotal)
	}
	if !report.ClosedTotal.Equal(decimal.NewFromInt(367)) {
		t.Errorf("ClosedTotal = %s, want 367", report.ClosedTotal)
	}
	if !report.GrandTotal.Equal(decimal.NewFromInt(382)) {
		t.Errorf("GrandTotal = %s, want 382", report.GrandTotal)
	}

	wantPayments := []PaymentSummary{
		{Method: "cash", Count: 2, Total: decimal.NewFromInt(357)},
		{Method: "gcash", Count: 1, Total: decimal.NewFromInt(10)},
	}
	if len(report.Payments) != len(wantPayments) {
		t.Fatalf("Payments = %+v, want %+v", report.Payments, wantPayments)
	}
	for i, want := range wantPayments {
		got := report.Payments[i]
		if got.Method != want.Method || got.Count != want.Count || !got.Total.Equal(want.Total) {
			t.Errorf("Payments[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func TestGetSalesReport_LineRollupsAndFreebies(t *testing.T) {
	trim := sales.LineItems{
		{
			Kind: sales.LineKindService, ServiceName: "Trim", Qty: 1, Price: decimal.NewFromInt(350),
			Freebies: []sales.FreebieAllocation{{
				Classification: "shampoo",
				Choices:        []sales.FreebieChoice{{Item: "Palmolive", Qty: 1}},
			}},
		},
		{Kind: sales.LineKindItem, ItemName: "Palmolive", Qty: 1, Price: decimal.Zero, Freebie: true},
	}
	repo := &fakeRepo{
		open: []*sales.Sale{
			saleAt("INV-0001", day(2026, 3, 1), sales.LineItems{itemLine("Coke", 2, 5)}),
		},
		closed: []*sales.Sale{
			closedSaleAt("INV-0002", day(2026, 3, 1), "cash", trim),
			closedSaleAt("INV-0003", day(2026, 3, 1), "cash", sales.LineItems{itemLine("Coke", 1, 5)}),
		},
	}
	svc := NewService(repo, passthroughTx{})

	report, err := svc.GetSalesReport(context.Background(), SalesReportFilter{FromDate: day(2026, 3, 1), ToDate: day(2026, 3, 1)})
	if err != nil {
		t.Fatalf("GetSalesReport failed: %v", err)
	}

	// items sorted by name: Coke (3 across collections), Palmolive freebie at zero
	if len(report.Items) != 2 {
		t.Fatalf("Items = %+v, want 2 rollups", report.Items)
	}
	if report.Items[0].Name != "Coke" || report.Items[0].Qty != 3 || !report.Items[0].Amount.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Items[0] = %+v, want Coke x3 for 15", report.Items[0])
	}
	if report.Items[1].Name != "Palmolive" || !report.Items[1].Amount.IsZero() {
		t.Errorf("Items[1] = %+v, want zero-amount Palmolive", report.Items[1])
	}

	if len(report.Services) != 1 || report.Services[0].Name != "Trim" {
		t.Fatalf("Services = %+v, want single Trim rollup", report.Services)
	}

	if report.FreebieQty != 1 {
		t.Errorf("FreebieQty = %d, want 1", report.FreebieQty)
	}
}

func TestGetSalesReport_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeRepo{}, passthroughTx{})

	_, err := svc.GetSalesReport(context.Background(), SalesReportFilter{
		FromDate: day(2026, 3, 5),
		ToDate:   day(2026, 3, 1),
	})
	if err == nil {
		t.Fatal("expected validation error for from_date after to_date")
	}
}

func TestGetSalesReport_UnboundedWithoutDates(t *testing.T) {
	repo := &fakeRepo{
		open: []*sales.Sale{
			saleAt("INV-0001", day(2020, 1, 1), sales.LineItems{itemLine("Coke", 1, 5)}),
			saleAt("INV-0002", day(2026, 3, 1), sales.LineItems{itemLine("Coke", 1, 5)}),
		},
	}
	svc := NewService(repo, passthroughTx{})

	report, err := svc.GetSalesReport(context.Background(), SalesReportFilter{})
	if err != nil {
		t.Fatalf("GetSalesReport failed: %v", err)
	}

	if report.OpenCount != 2 {
		t.Errorf("OpenCount = %d, want full history without date bounds", report.OpenCount)
	}
	if !repo.gotFrom.IsZero() || !repo.gotTo.IsZero() {
		t.Errorf("queried range [%v, %v), want unbounded", repo.gotFrom, repo.gotTo)
	}
	if !report.FromDate.IsZero() || !report.ToDate.IsZero() {
		t.Errorf("report window [%v, %v], want zero for full history", report.FromDate, report.ToDate)
	}
}

func TestGetSalesReport_SingleBoundIsUnbounded(t *testing.T) {
	repo := &fakeRepo{
		open: []*sales.Sale{
			saleAt("INV-0001", day(2020, 1, 1), sales.LineItems{itemLine("Coke", 1, 5)}),
		},
	}
	svc := NewService(repo, passthroughTx{})

	report, err := svc.GetSalesReport(context.Background(), SalesReportFilter{FromDate: day(2026, 3, 1)})
	if err != nil {
		t.Fatalf("GetSalesReport failed: %v", err)
	}

	if report.OpenCount != 1 {
		t.Errorf("OpenCount = %d, want 1 (missing to date disables filtering)", report.OpenCount)
	}
}
