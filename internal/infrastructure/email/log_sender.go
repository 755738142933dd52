package email

import (
	"context"

	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/pkg/logger"
)

var _ billing.InvoiceEmailSender = (*LogSender)(nil)

// LogSender sender de desarrollo: no envía nada, solo loguea el correo que
// se habría enviado. Se usa cuando SMTP_HOST está vacío.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de desarrollo.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendInvoice loguea el envío simulado y retorna nil.
func (s *LogSender) SendInvoice(_ context.Context, to string, doc *billing.InvoiceDocument, pdf []byte, filename string) error {
	s.log.Info().
		Str("to", to).
		Str("invoice_number", doc.Invoice.InvoiceNumber).
		Str("attachment", filename).
		Int("pdf_bytes", len(pdf)).
		Msg("envío de factura simulado (SMTP no configurado)")
	return nil
}
