package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento factura.
const (
	InvoiceStatusDraft     = "draft"     // Creada, aún no enviada al cliente
	InvoiceStatusSent      = "sent"      // Enviada por email
	InvoiceStatusPaid      = "paid"      // Pagada (inmutable a partir de aquí)
	InvoiceStatusOverdue   = "overdue"   // Marcada vencida manualmente
	InvoiceStatusCancelled = "cancelled" // Anulada
)

// Estados del pago, semi-independientes del status del documento.
const (
	PaymentStatusPending       = "pending"
	PaymentStatusPaid          = "paid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusOverdue       = "overdue"
	PaymentStatusCancelled     = "cancelled"
)

// Invoice representa la cabecera de una factura.
type Invoice struct {
	ID            string
	InvoiceNumber string // INV-{año}{mes}-{secuencia}
	ClientID      string
	ProjectID     string // opcional; vacío si la factura no referencia proyecto
	IssueDate     time.Time
	DueDate       time.Time
	SubTotal      decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje, ej. 18 = 18%
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        string // draft, sent, paid, overdue, cancelled
	PaymentStatus string // pending, paid, partially_paid, overdue, cancelled
	PaidAt        *time.Time
	Notes         string
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPaid es la guarda canónica de inmutabilidad: una factura con el documento
// o el pago en "paid" no admite update ni delete.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid || i.PaymentStatus == PaymentStatusPaid
}

// IsOverdueAt clasifica la factura como vencida respecto a una fecha de
// referencia. Es una clasificación de lectura: nada persiste este estado.
// Una factura que vence hoy NO está vencida.
func (i *Invoice) IsOverdueAt(today time.Time) bool {
	due := i.DueDate.Truncate(24 * time.Hour)
	ref := today.Truncate(24 * time.Hour)
	return due.Before(ref) &&
		i.PaymentStatus != PaymentStatusPaid &&
		i.Status != InvoiceStatusCancelled
}

// ValidInvoiceStatus valida un status de factura recibido por la API.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus valida un payment_status recibido por la API.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartiallyPaid,
		PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}
