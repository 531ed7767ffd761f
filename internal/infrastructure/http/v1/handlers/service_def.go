package handlers

import (
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/catalogs/service_def"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

// ServiceDefHandler serves the service definition catalog endpoints.
type ServiceDefHandler struct {
	base    *BaseHandler
	service *service_def.Service
}

// NewServiceDefHandler creates a new service definition handler.
func NewServiceDefHandler(base *BaseHandler, service *service_def.Service) *ServiceDefHandler {
	return &ServiceDefHandler{base: base, service: service}
}

// List handles GET /services.
func (h *ServiceDefHandler) List(c *gin.Context) {
	svcs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromServices(svcs))
}

// Get handles GET /services/:id.
func (h *ServiceDefHandler) Get(c *gin.Context) {
	svcID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), svcID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromService(svc))
}

// Create handles POST /services.
func (h *ServiceDefHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	svc := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), svc); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, svc.ID)
}

// Update handles PUT /services/:id.
func (h *ServiceDefHandler) Update(c *gin.Context) {
	svcID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), svcID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(svc)
	if err := h.service.Update(c.Request.Context(), svc); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromService(svc))
}

// Delete handles DELETE /services/:id.
func (h *ServiceDefHandler) Delete(c *gin.Context) {
	svcID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), svcID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Success(c, "service deleted")
}
