package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func serviceLine(qty int, classifications ...string) LineItem {
	return LineItem{
		Kind:        LineKindService,
		ServiceName: "Trim",
		Qty:         qty,
		Price:       decimal.NewFromInt(350),
		Freebies:    NewAllocations(classifications),
	}
}

func TestAddFreebieChoice_CapEqualsLineQty(t *testing.T) {
	li := serviceLine(2, "shampoo")

	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("first choice: %v", err)
	}
	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("second choice: %v", err)
	}
	if err := li.AddFreebieChoice("shampoo"); err == nil {
		t.Fatal("expected error once the entitlement is fully allocated")
	}

	if got := li.FreebieRemaining("shampoo"); got != 0 {
		t.Errorf("FreebieRemaining = %d, want 0", got)
	}
}

func TestAddFreebieChoice_CapsIndependentPerClassification(t *testing.T) {
	li := serviceLine(1, "shampoo", "soap")

	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("shampoo choice: %v", err)
	}
	if err := li.AddFreebieChoice("soap"); err != nil {
		t.Fatalf("soap choice: %v", err)
	}
	if err := li.AddFreebieChoice("soap"); err == nil {
		t.Fatal("expected soap slot to be full")
	}
}

func TestAddFreebieChoice_UnknownClassification(t *testing.T) {
	li := serviceLine(1, "shampoo")

	if err := li.AddFreebieChoice("conditioner"); err == nil {
		t.Fatal("expected error for classification outside the entitlement")
	}
}

func TestSetFreebieChoiceQty_Clamped(t *testing.T) {
	li := serviceLine(2, "shampoo")
	mustAdd := func() {
		t.Helper()
		if err := li.AddFreebieChoice("shampoo"); err != nil {
			t.Fatalf("add choice: %v", err)
		}
	}
	mustAdd()
	mustAdd()

	tests := []struct {
		name    string
		idx     int
		qty     int
		wantQty int
	}{
		{name: "clamped to remaining", idx: 0, qty: 5, wantQty: 1},
		{name: "floor at one", idx: 1, qty: 0, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := li.SetFreebieChoiceQty("shampoo", tt.idx, tt.qty); err != nil {
				t.Fatalf("SetFreebieChoiceQty failed: %v", err)
			}
			if got := li.Freebies[0].Choices[tt.idx].Qty; got != tt.wantQty {
				t.Errorf("qty = %d, want %d", got, tt.wantQty)
			}
		})
	}
}

func TestSetFreebieChoiceQty_GrowsAfterRemove(t *testing.T) {
	li := serviceLine(3, "shampoo")
	for i := 0; i < 3; i++ {
		if err := li.AddFreebieChoice("shampoo"); err != nil {
			t.Fatalf("add choice %d: %v", i, err)
		}
	}

	if err := li.RemoveFreebieChoice("shampoo", 2); err != nil {
		t.Fatalf("remove choice: %v", err)
	}
	if got := li.FreebieRemaining("shampoo"); got != 1 {
		t.Fatalf("FreebieRemaining = %d, want 1", got)
	}

	if err := li.SetFreebieChoiceQty("shampoo", 0, 2); err != nil {
		t.Fatalf("SetFreebieChoiceQty failed: %v", err)
	}
	if got := li.Freebies[0].Choices[0].Qty; got != 2 {
		t.Errorf("qty = %d, want 2", got)
	}
	if got := li.Freebies[0].Used(); got != 3 {
		t.Errorf("Used = %d, want 3", got)
	}
}

func TestNormalize_DerivesZeroPriceLines(t *testing.T) {
	li := serviceLine(2, "shampoo")
	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if err := li.SetFreebieChoiceItem("shampoo", 0, "Palmolive"); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if err := li.SetFreebieChoiceQty("shampoo", 0, 2); err != nil {
		t.Fatalf("set qty: %v", err)
	}

	items := Normalize(LineItems{li})
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	derived := items[1]
	if derived.Kind != LineKindItem || !derived.Freebie {
		t.Errorf("derived line = %+v, want zero-price freebie item line", derived)
	}
	if derived.ItemName != "Palmolive" || derived.Qty != 2 {
		t.Errorf("derived line = %s x%d, want Palmolive x2", derived.ItemName, derived.Qty)
	}
	if !derived.Price.IsZero() {
		t.Errorf("derived price = %s, want 0", derived.Price)
	}

	// total must come from the service line alone
	if got := items.Total(); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("Total = %s, want 700", got)
	}
}

func TestNormalize_SkipsEmptySelections(t *testing.T) {
	li := serviceLine(2, "shampoo")
	if err := li.AddFreebieChoice("shampoo"); err != nil {
		t.Fatalf("add choice: %v", err)
	}
	// no item ever picked for the choice

	items := Normalize(LineItems{li})
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 (empty selection dropped)", len(items))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	li := serviceLine(1, "soap")
	if err := li.AddFreebieChoice("soap"); err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if err := li.SetFreebieChoiceItem("soap", 0, "Safeguard"); err != nil {
		t.Fatalf("set item: %v", err)
	}

	once := Normalize(LineItems{li})
	twice := Normalize(once)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed line count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Name() != twice[i].Name() || once[i].Qty != twice[i].Qty {
			t.Errorf("line %d changed across passes: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestValidate_RejectsOverAllocation(t *testing.T) {
	// an over-allocated blob, as a tampering client could submit
	li := serviceLine(1, "shampoo")
	li.Freebies[0].Choices = []FreebieChoice{
		{Item: "Palmolive", Qty: 1},
		{Item: "Sunsilk", Qty: 1},
	}

	sale := NewOpenSale("INV-0001", LineItems{li})
	if err := sale.Validate(context.Background()); err == nil {
		t.Fatal("expected validation error for Σ choices > line qty")
	}
}
