package dto

import (
	"time"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Address   string `json:"address,omitempty"`
	TaxNumber string `json:"tax_number,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
// Status admite active|inactive|suspended.
type UpdateClientRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Address   string `json:"address,omitempty"`
	TaxNumber string `json:"tax_number,omitempty"`
	Status    string `json:"status" validate:"required,oneof=active inactive suspended"`
	Notes     string `json:"notes,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxNumber string    `json:"tax_number,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientFromEntity convierte la entidad de dominio al DTO de salida.
func ClientFromEntity(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		TaxNumber: c.TaxNumber,
		Status:    c.Status,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ClientsFromEntities convierte un slice de entidades.
func ClientsFromEntities(cs []*entity.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ClientFromEntity(c))
	}
	return out
}
