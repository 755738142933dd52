// Package email implementa el envío de facturas por correo con el PDF
// adjunto. En desarrollo (sin SMTP_HOST) se usa un sender que solo loguea.
package email

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/pkg/config"
)

var _ billing.InvoiceEmailSender = (*SMTPSender)(nil)

// SMTPSender implementa billing.InvoiceEmailSender contra un servidor SMTP.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender construye el sender con la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendInvoice envía la factura al email del cliente con el PDF adjunto.
func (s *SMTPSender) SendInvoice(_ context.Context, to string, doc *billing.InvoiceDocument, pdf []byte, filename string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Factura %s", doc.Invoice.InvoiceNumber))
	m.SetBody("text/plain", invoiceBody(doc))
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar factura %s: %w", doc.Invoice.InvoiceNumber, err)
	}
	return nil
}

// invoiceBody cuerpo de texto plano del correo.
func invoiceBody(doc *billing.InvoiceDocument) string {
	return fmt.Sprintf(
		"Hola %s,\n\n"+
			"Adjuntamos la factura %s por un total de $%s, con vencimiento el %s.\n\n"+
			"Gracias por su confianza.\n",
		doc.Client.Name,
		doc.Invoice.InvoiceNumber,
		doc.Invoice.TotalAmount.StringFixed(2),
		doc.Invoice.DueDate.Format("02/01/2006"),
	)
}
