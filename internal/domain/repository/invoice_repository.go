package repository

import (
	"time"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
)

// InvoiceWithNames cabecera de factura más nombres de cliente y proyecto
// (join de lectura para listados y respuestas).
type InvoiceWithNames struct {
	entity.Invoice
	ClientName  string
	ProjectName string // vacío si la factura no referencia proyecto
}

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
// Todas las lecturas excluyen filas con soft delete. Las operaciones que
// tocan cabecera y líneas a la vez se ejecutan dentro de un TxRunner.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetByIDWithNames(id string) (*InvoiceWithNames, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	List(limit, offset int) ([]*InvoiceWithNames, error)
	ListByClient(clientID string) ([]*InvoiceWithNames, error)
	ListByProject(projectID string) ([]*InvoiceWithNames, error)
	ListOverdue(today time.Time) ([]*InvoiceWithNames, error)
	ListByPaymentStatus(paymentStatus string) ([]*InvoiceWithNames, error)
	Update(invoice *entity.Invoice) error
	DeleteItems(invoiceID string) error
	SoftDelete(id string) error
	// CountCreatedInMonth cuenta facturas vivas creadas en el mes (para la
	// secuencia del número de factura; la unicidad la garantiza el índice).
	CountCreatedInMonth(year int, month time.Month) (int, error)
}
