package handlers

import (
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/reports"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the reporting endpoints.
type ReportsHandler struct {
	base    *BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{base: base, service: service}
}

// SalesReport handles GET /reports/sales.
func (h *ReportsHandler) SalesReport(c *gin.Context) {
	var query dto.SalesReportQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	report, err := h.service.GetSalesReport(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromSalesReport(report))
}
