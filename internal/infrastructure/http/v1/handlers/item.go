package handlers

import (
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/catalogs/item"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

// ItemHandler serves the inventory catalog endpoints.
type ItemHandler struct {
	base    *BaseHandler
	service *item.Service
}

// NewItemHandler creates a new inventory item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{base: base, service: service}
}

// List handles GET /inventory.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromItems(items))
}

// Get handles GET /inventory/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromItem(it))
}

// Create handles POST /inventory.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	it := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), it); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, it.ID)
}

// Update handles PUT /inventory/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(it)
	if err := h.service.Update(c.Request.Context(), it); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromItem(it))
}

// Delete handles DELETE /inventory/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Success(c, "item deleted")
}
