package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/core/id"
	"tuldokpos/internal/domain/sales"
)

// FreebieChoiceDTO mirrors a picked freebie item.
type FreebieChoiceDTO struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// FreebieAllocationDTO mirrors an allocation slot of a service line.
type FreebieAllocationDTO struct {
	Classification string             `json:"classification"`
	Choices        []FreebieChoiceDTO `json:"choices"`
}

// SaleLineRequest is one line item in a sale request.
type SaleLineRequest struct {
	Kind        string                 `json:"type" binding:"required"`
	RefID       *string                `json:"ref_id"`
	ItemName    string                 `json:"item_name"`
	ServiceName string                 `json:"service_name"`
	Qty         int                    `json:"qty"`
	Price       decimal.Decimal        `json:"price"`
	Freebies    []FreebieAllocationDTO `json:"freebies"`
}

func (r *SaleLineRequest) toLineItem() (sales.LineItem, error) {
	li := sales.LineItem{
		Kind:        sales.LineKind(r.Kind),
		ItemName:    r.ItemName,
		ServiceName: r.ServiceName,
		Qty:         r.Qty,
		Price:       r.Price,
	}

	if r.RefID != nil && *r.RefID != "" {
		ref, err := id.Parse(*r.RefID)
		if err != nil {
			return sales.LineItem{}, apperror.NewValidation("invalid item reference").
				WithDetail("field", "ref_id").
				WithDetail("value", *r.RefID)
		}
		li.RefID = &ref
	}

	for _, alloc := range r.Freebies {
		choices := make([]sales.FreebieChoice, 0, len(alloc.Choices))
		for _, c := range alloc.Choices {
			choices = append(choices, sales.FreebieChoice{Item: c.Item, Qty: c.Qty})
		}
		li.Freebies = append(li.Freebies, sales.FreebieAllocation{
			Classification: alloc.Classification,
			Choices:        choices,
		})
	}

	return li, nil
}

// CreateSaleRequest is the request body for creating an open sale.
type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	Items         []SaleLineRequest `json:"items" binding:"required"`
}

// ToLineItems converts the request lines to domain line items.
func (r *CreateSaleRequest) ToLineItems() (sales.LineItems, error) {
	return toLineItems(r.Items)
}

// UpdateSaleRequest is the request body for replacing the line items of
// an open sale.
type UpdateSaleRequest struct {
	Items []SaleLineRequest `json:"items" binding:"required"`
}

// ToLineItems converts the request lines to domain line items.
func (r *UpdateSaleRequest) ToLineItems() (sales.LineItems, error) {
	return toLineItems(r.Items)
}

func toLineItems(lines []SaleLineRequest) (sales.LineItems, error) {
	items := make(sales.LineItems, 0, len(lines))
	for i := range lines {
		li, err := lines[i].toLineItem()
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

// PaySaleRequest is the request body for closing a sale.
type PaySaleRequest struct {
	PaidUsing string `json:"paid_using" binding:"required"`
}

// SaleLineResponse is one line item in a sale response.
type SaleLineResponse struct {
	Kind        string                 `json:"type"`
	RefID       *string                `json:"ref_id,omitempty"`
	ItemName    string                 `json:"item_name,omitempty"`
	ServiceName string                 `json:"service_name,omitempty"`
	Qty         int                    `json:"qty"`
	Price       decimal.Decimal        `json:"price"`
	Amount      decimal.Decimal        `json:"amount"`
	Freebie     bool                   `json:"freebie,omitempty"`
	Freebies    []FreebieAllocationDTO `json:"freebies,omitempty"`
}

// SaleResponse is the response body for a sale.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	Items         []SaleLineResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	PaidUsing     *string            `json:"paid_using,omitempty"`
}

// FromSale creates a response DTO from a domain sale.
func FromSale(sale *sales.Sale) *SaleResponse {
	lines := make([]SaleLineResponse, 0, len(sale.Items))
	for _, li := range sale.Items {
		line := SaleLineResponse{
			Kind:        string(li.Kind),
			ItemName:    li.ItemName,
			ServiceName: li.ServiceName,
			Qty:         li.Qty,
			Price:       li.Price,
			Amount:      li.Amount(),
			Freebie:     li.Freebie,
		}
		if li.RefID != nil {
			ref := li.RefID.String()
			line.RefID = &ref
		}
		for _, alloc := range li.Freebies {
			choices := make([]FreebieChoiceDTO, 0, len(alloc.Choices))
			for _, c := range alloc.Choices {
				choices = append(choices, FreebieChoiceDTO{Item: c.Item, Qty: c.Qty})
			}
			line.Freebies = append(line.Freebies, FreebieAllocationDTO{
				Classification: alloc.Classification,
				Choices:        choices,
			})
		}
		lines = append(lines, line)
	}

	return &SaleResponse{
		ID:            sale.ID.String(),
		InvoiceNumber: sale.InvoiceNumber,
		Items:         lines,
		Total:         sale.Total(),
		CreatedAt:     sale.CreatedAt,
		PaidAt:        sale.PaidAt,
		PaidUsing:     sale.PaidUsing,
	}
}

// FromSales maps a list of sales.
func FromSales(list []*sales.Sale) []*SaleResponse {
	out := make([]*SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, FromSale(sale))
	}
	return out
}

// NextInvoiceResponse carries a freshly issued invoice number.
type NextInvoiceResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}
