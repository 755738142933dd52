package billing

import (
	"context"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con un
// repositorio de facturas ligado a esa transacción. Si fn retorna error se
// hace rollback; si retorna nil se hace commit.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoiceDocument datos completos de una factura para render (PDF o email):
// cabecera, cliente, nombre de proyecto (vacío si no hay) y líneas.
type InvoiceDocument struct {
	Invoice     *entity.Invoice
	Client      *entity.Client
	ProjectName string
	Items       []*entity.InvoiceItem
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceEmailSender envía la factura por email con el PDF adjunto.
type InvoiceEmailSender interface {
	SendInvoice(ctx context.Context, to string, doc *InvoiceDocument, pdf []byte, filename string) error
}
