package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tuldokpos/internal/domain/catalogs/service_def"
)

// CreateServiceRequest is the request body for creating a service
// definition.
type CreateServiceRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Freebies []string        `json:"freebies"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateServiceRequest) ToEntity() *service_def.ServiceDef {
	return service_def.NewServiceDef(r.Name, r.Price, r.Freebies)
}

// UpdateServiceRequest is the request body for updating a service
// definition.
type UpdateServiceRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Freebies []string        `json:"freebies"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateServiceRequest) ApplyTo(svc *service_def.ServiceDef) {
	svc.Name = r.Name
	svc.Price = r.Price
	svc.Freebies = r.Freebies
	if svc.Freebies == nil {
		svc.Freebies = []string{}
	}
}

// ServiceResponse is the response body for a service definition.
type ServiceResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Freebies  []string        `json:"freebies"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromService creates a response DTO from a domain entity.
func FromService(svc *service_def.ServiceDef) *ServiceResponse {
	return &ServiceResponse{
		ID:        svc.ID.String(),
		Name:      svc.Name,
		Price:     svc.Price,
		Freebies:  svc.Freebies,
		CreatedAt: svc.CreatedAt,
	}
}

// FromServices maps a list of service definitions.
func FromServices(svcs []*service_def.ServiceDef) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(svcs))
	for _, svc := range svcs {
		out = append(out, FromService(svc))
	}
	return out
}
