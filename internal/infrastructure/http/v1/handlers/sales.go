package handlers

import (
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/sales"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

// SalesHandler serves the sale lifecycle endpoints.
type SalesHandler struct {
	base    *BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, service *sales.Service) *SalesHandler {
	return &SalesHandler{base: base, service: service}
}

// ListOpen handles GET /open-sales.
func (h *SalesHandler) ListOpen(c *gin.Context) {
	list, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSales(list))
}

// GetOpen handles GET /open-sales/:id.
func (h *SalesHandler) GetOpen(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	sale, err := h.service.GetOpen(c.Request.Context(), saleID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSale(sale))
}

// CreateOpen handles POST /open-sales.
func (h *SalesHandler) CreateOpen(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	items, err := req.ToLineItems()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	sale, err := h.service.CreateOpen(c.Request.Context(), req.InvoiceNumber, items)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, sale.ID)
}

// UpdateOpen handles PUT /open-sales/:id.
func (h *SalesHandler) UpdateOpen(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	items, err := req.ToLineItems()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	sale, err := h.service.UpdateOpen(c.Request.Context(), saleID, items)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSale(sale))
}

// DeleteOpen handles DELETE /open-sales/:id.
func (h *SalesHandler) DeleteOpen(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOpen(c.Request.Context(), saleID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Success(c, "sale deleted")
}

// NextInvoice handles GET /open-sales/next-invoice.
func (h *SalesHandler) NextInvoice(c *gin.Context) {
	number, err := h.service.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.NextInvoiceResponse{InvoiceNumber: number})
}

// Pay handles POST /pay-sale/:id.
func (h *SalesHandler) Pay(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.PaySaleRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.Pay(c.Request.Context(), saleID, req.PaidUsing)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSale(sale))
}

// Revert handles POST /revert-sale/:id.
func (h *SalesHandler) Revert(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	sale, err := h.service.Revert(c.Request.Context(), saleID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSale(sale))
}

// ListClosed handles GET /closed-sales.
func (h *SalesHandler) ListClosed(c *gin.Context) {
	list, err := h.service.ListClosed(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSales(list))
}

// GetClosed handles GET /closed-sales/:id.
func (h *SalesHandler) GetClosed(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	sale, err := h.service.GetClosed(c.Request.Context(), saleID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSale(sale))
}

// DeleteClosed handles DELETE /closed-sales/:id.
func (h *SalesHandler) DeleteClosed(c *gin.Context) {
	saleID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteClosed(c.Request.Context(), saleID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Success(c, "sale deleted")
}
