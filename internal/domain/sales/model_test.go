package sales

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/id"
)

func itemLine(name string, qty int, price int64) LineItem {
	ref := id.New()
	return LineItem{
		Kind:     LineKindItem,
		RefID:    &ref,
		ItemName: name,
		Qty:      qty,
		Price:    decimal.NewFromInt(price),
	}
}

func TestLineItems_Total(t *testing.T) {
	items := LineItems{
		itemLine("Coke", 3, 5),
		serviceLine(1, "shampoo"),
		{Kind: LineKindItem, ItemName: "Palmolive", Qty: 2, Price: decimal.Zero, Freebie: true},
	}

	if got := items.Total(); !got.Equal(decimal.NewFromInt(365)) {
		t.Errorf("Total = %s, want 365", got)
	}
}

func TestSale_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Sale)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Sale) {}},
		{name: "missing invoice number", mutate: func(s *Sale) { s.InvoiceNumber = "" }, wantErr: true},
		{name: "no items", mutate: func(s *Sale) { s.Items = nil }, wantErr: true},
		{name: "zero qty", mutate: func(s *Sale) { s.Items[0].Qty = 0 }, wantErr: true},
		{name: "negative price", mutate: func(s *Sale) { s.Items[0].Price = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "unknown kind", mutate: func(s *Sale) { s.Items[0].Kind = "bundle" }, wantErr: true},
		{name: "item without name", mutate: func(s *Sale) { s.Items[0].ItemName = "" }, wantErr: true},
		{name: "allocations on item line", mutate: func(s *Sale) {
			s.Items[0].Freebies = NewAllocations([]string{"soap"})
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := NewOpenSale("INV-0001", LineItems{itemLine("Coke", 1, 5)})
			tt.mutate(sale)

			err := sale.Validate(ctx)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSale_CloseReopen(t *testing.T) {
	open := NewOpenSale("INV-0007", LineItems{itemLine("Coke", 2, 5)})
	paidAt := time.Now().UTC()

	closed := open.Close("gcash", paidAt)
	if !closed.IsClosed() {
		t.Fatal("Close must stamp paid_at")
	}
	if closed.PaidUsing == nil || *closed.PaidUsing != "gcash" {
		t.Errorf("PaidUsing = %v, want gcash", closed.PaidUsing)
	}
	if closed.ID != open.ID || closed.InvoiceNumber != open.InvoiceNumber {
		t.Error("Close must preserve identity")
	}
	if !closed.CreatedAt.Equal(open.CreatedAt) {
		t.Error("Close must preserve created_at")
	}
	if closed.PaidAt.Before(closed.CreatedAt) {
		t.Error("paid_at must not precede created_at")
	}

	reopened := closed.Reopen()
	if reopened.IsClosed() || reopened.PaidUsing != nil {
		t.Error("Reopen must null the payment stamps")
	}
	if reopened.ID != open.ID {
		t.Error("Reopen must preserve identity")
	}

	// the original open sale is untouched
	if open.IsClosed() {
		t.Error("Close must not mutate the receiver")
	}
}

func TestLineItem_TaggedUnionJSON(t *testing.T) {
	li := serviceLine(1, "shampoo")
	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if err := li.SetFreebieChoiceItem("shampoo", 0, "Palmolive"); err != nil {
		t.Fatalf("set item: %v", err)
	}

	data, err := json.Marshal(LineItems{li, itemLine("Coke", 3, 5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded LineItems
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded[0].Kind != LineKindService || decoded[0].ServiceName != "Trim" {
		t.Errorf("service line lost its tag: %+v", decoded[0])
	}
	if got := decoded[0].Freebies[0].Choices[0].Item; got != "Palmolive" {
		t.Errorf("freebie choice item = %q, want Palmolive", got)
	}
	if decoded[1].Kind != LineKindItem || decoded[1].RefID == nil {
		t.Errorf("item line lost its reference: %+v", decoded[1])
	}
	if !decoded.Total().Equal(decimal.NewFromInt(365)) {
		t.Errorf("Total after round trip = %s, want 365", decoded.Total())
	}
}
