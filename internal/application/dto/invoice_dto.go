package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// InvoiceItemRequest línea de factura (descripción, cantidad, precio unitario).
// El total de línea se calcula en el servidor, nunca se confía en el cliente.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// El número de factura se genera en el servidor (INV-YYYYMM-NNNN).
// TaxRate es un porcentaje (18 = 18%). Las fechas van en formato YYYY-MM-DD.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"client_id" validate:"required,uuid"`
	ProjectID string               `json:"project_id,omitempty" validate:"omitempty,uuid"`
	IssueDate string               `json:"issue_date" validate:"required"`
	DueDate   string               `json:"due_date" validate:"required"`
	TaxRate   decimal.Decimal      `json:"tax_rate"`
	Notes     string               `json:"notes,omitempty"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
// Los items reemplazan por completo a los existentes.
type UpdateInvoiceRequest struct {
	ClientID  string               `json:"client_id" validate:"required,uuid"`
	ProjectID string               `json:"project_id,omitempty" validate:"omitempty,uuid"`
	IssueDate string               `json:"issue_date" validate:"required"`
	DueDate   string               `json:"due_date" validate:"required"`
	TaxRate   decimal.Decimal      `json:"tax_rate"`
	Status    string               `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
	Notes     string               `json:"notes,omitempty"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateInvoiceStatusRequest body para PUT /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

// UpdatePaymentStatusRequest body para PUT /api/invoices/:id/payment-status.
// PaidAt es opcional; al marcar paid sin fecha se usa la fecha actual.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string     `json:"payment_status" validate:"required,oneof=pending paid partially_paid overdue cancelled"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// InvoiceItemResponse línea de factura en respuestas.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse factura en respuestas, con nombres de cliente y proyecto
// cuando la consulta los trae, y con items cuando el endpoint los carga.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ClientID      string                `json:"client_id"`
	ClientName    string                `json:"client_name,omitempty"`
	ProjectID     string                `json:"project_id,omitempty"`
	ProjectName   string                `json:"project_name,omitempty"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	SubTotal      decimal.Decimal       `json:"sub_total"`
	TaxRate       decimal.Decimal       `json:"tax_rate"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceFromEntity convierte la entidad de dominio al DTO de salida.
func InvoiceFromEntity(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		ProjectID:     inv.ProjectID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		SubTotal:      inv.SubTotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		PaymentStatus: inv.PaymentStatus,
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// InvoiceFromRow convierte la proyección con nombres de cliente y proyecto.
func InvoiceFromRow(r *repository.InvoiceWithNames) InvoiceResponse {
	out := InvoiceFromEntity(&r.Invoice)
	out.ClientName = r.ClientName
	out.ProjectName = r.ProjectName
	return out
}

// InvoicesFromRows convierte un slice de proyecciones.
func InvoicesFromRows(rows []*repository.InvoiceWithNames) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, InvoiceFromRow(r))
	}
	return out
}

// ItemsFromEntities convierte las líneas de una factura.
func ItemsFromEntities(items []*entity.InvoiceItem) []InvoiceItemResponse {
	out := make([]InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return out
}
