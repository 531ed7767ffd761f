package sales

import (
	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
)

// FreebieChoice is one picked item within an allocation slot.
type FreebieChoice struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// FreebieAllocation is the allocation slot of a service line for one
// eligible classification. The entitlement cap equals the line quantity:
// Σ choice qty never exceeds it, independently per classification.
type FreebieAllocation struct {
	Classification string          `json:"classification"`
	Choices        []FreebieChoice `json:"choices"`
}

// Used returns the total quantity already allocated in this slot.
func (a FreebieAllocation) Used() int {
	total := 0
	for _, c := range a.Choices {
		total += c.Qty
	}
	return total
}

func (a FreebieAllocation) validate(lineNo, limit int) error {
	if a.Classification == "" {
		return apperror.NewValidation("freebie classification is required").
			WithDetail("field", "items").
			WithDetail("lineNo", lineNo)
	}
	for _, c := range a.Choices {
		if c.Qty < 1 {
			return apperror.NewValidation("freebie choice quantity must be at least 1").
				WithDetail("field", "items").
				WithDetail("lineNo", lineNo).
				WithDetail("classification", a.Classification)
		}
	}
	if a.Used() > limit {
		return apperror.NewValidation("freebie choices exceed the line quantity").
			WithDetail("field", "items").
			WithDetail("lineNo", lineNo).
			WithDetail("classification", a.Classification).
			WithDetail("cap", limit)
	}
	return nil
}

// NewAllocations builds empty allocation slots for the given
// classifications, one per entry.
func NewAllocations(classifications []string) []FreebieAllocation {
	if len(classifications) == 0 {
		return nil
	}
	allocs := make([]FreebieAllocation, 0, len(classifications))
	for _, cl := range classifications {
		allocs = append(allocs, FreebieAllocation{Classification: cl})
	}
	return allocs
}

func (li *LineItem) allocation(classification string) (*FreebieAllocation, error) {
	for i := range li.Freebies {
		if li.Freebies[i].Classification == classification {
			return &li.Freebies[i], nil
		}
	}
	return nil, apperror.NewNotFound("freebie allocation", classification)
}

// FreebieRemaining returns the unallocated quantity left in the given
// classification slot, or 0 if the slot does not exist.
func (li *LineItem) FreebieRemaining(classification string) int {
	alloc, err := li.allocation(classification)
	if err != nil {
		return 0
	}
	remaining := li.Qty - alloc.Used()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AddFreebieChoice appends a new choice with quantity 1 to the given
// classification slot. Fails with a validation error once the slot is
// fully allocated.
func (li *LineItem) AddFreebieChoice(classification string) error {
	alloc, err := li.allocation(classification)
	if err != nil {
		return err
	}
	if alloc.Used() >= li.Qty {
		return apperror.NewValidation("freebie entitlement is fully allocated").
			WithDetail("classification", classification).
			WithDetail("cap", li.Qty)
	}
	alloc.Choices = append(alloc.Choices, FreebieChoice{Qty: 1})
	return nil
}

// SetFreebieChoiceItem sets the picked item of a choice.
func (li *LineItem) SetFreebieChoiceItem(classification string, idx int, item string) error {
	alloc, err := li.allocation(classification)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(alloc.Choices) {
		return apperror.NewNotFound("freebie choice", idx)
	}
	alloc.Choices[idx].Item = item
	return nil
}

// SetFreebieChoiceQty sets the quantity of a choice, clamped to the
// range [1, cap − Σ other choices] so the slot total never exceeds the
// line quantity.
func (li *LineItem) SetFreebieChoiceQty(classification string, idx, qty int) error {
	alloc, err := li.allocation(classification)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(alloc.Choices) {
		return apperror.NewNotFound("freebie choice", idx)
	}

	max := li.Qty - (alloc.Used() - alloc.Choices[idx].Qty)
	if qty > max {
		qty = max
	}
	if qty < 1 {
		qty = 1
	}
	alloc.Choices[idx].Qty = qty
	return nil
}

// RemoveFreebieChoice deletes a choice from the slot, freeing its
// quantity.
func (li *LineItem) RemoveFreebieChoice(classification string, idx int) error {
	alloc, err := li.allocation(classification)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(alloc.Choices) {
		return apperror.NewNotFound("freebie choice", idx)
	}
	alloc.Choices = append(alloc.Choices[:idx], alloc.Choices[idx+1:]...)
	return nil
}

// flattenFreebies derives zero-price item lines from the allocation
// choices of a service line. Choices without a picked item are skipped.
func (li LineItem) flattenFreebies() LineItems {
	var derived LineItems
	for _, alloc := range li.Freebies {
		for _, c := range alloc.Choices {
			if c.Item == "" || c.Qty < 1 {
				continue
			}
			derived = append(derived, LineItem{
				Kind:     LineKindItem,
				ItemName: c.Item,
				Qty:      c.Qty,
				Price:    decimal.Zero,
				Freebie:  true,
			})
		}
	}
	return derived
}

// Normalize rebuilds the derived freebie lines of a sale: previously
// derived lines are dropped and fresh ones are appended after their
// originating service line. Idempotent.
func Normalize(items LineItems) LineItems {
	normalized := make(LineItems, 0, len(items))
	for _, li := range items {
		if li.Kind == LineKindItem && li.Freebie {
			continue
		}
		normalized = append(normalized, li)
		if li.Kind == LineKindService {
			normalized = append(normalized, li.flattenFreebies()...)
		}
	}
	return normalized
}
