package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// EmailUseCase envía una factura por email con su PDF adjunto.
type EmailUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdfUC       *PDFUseCase
	sender      InvoiceEmailSender
}

// NewEmailUseCase construye el caso de uso.
func NewEmailUseCase(invoiceRepo repository.InvoiceRepository, pdfUC *PDFUseCase, sender InvoiceEmailSender) *EmailUseCase {
	return &EmailUseCase{invoiceRepo: invoiceRepo, pdfUC: pdfUC, sender: sender}
}

// SendInvoice carga la factura, exige que el cliente tenga email, genera el
// PDF y lo envía. Solo si el envío sale bien y la factura estaba en draft se
// avanza a sent; cualquier fallo anterior deja el estado intacto.
func (uc *EmailUseCase) SendInvoice(ctx context.Context, invoiceID string) error {
	doc, err := uc.pdfUC.BuildDocument(invoiceID)
	if err != nil {
		return err
	}
	if doc.Client.Email == "" {
		return domain.ErrClientNoEmail
	}
	pdf, err := uc.pdfUC.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return fmt.Errorf("email: generar PDF adjunto: %w", err)
	}
	filename := PDFFilename(doc.Invoice.InvoiceNumber)
	if err := uc.sender.SendInvoice(ctx, doc.Client.Email, doc, pdf, filename); err != nil {
		return fmt.Errorf("email: envío fallido: %w", err)
	}
	if doc.Invoice.Status == entity.InvoiceStatusDraft {
		doc.Invoice.Status = entity.InvoiceStatusSent
		doc.Invoice.UpdatedAt = time.Now()
		if err := uc.invoiceRepo.Update(doc.Invoice); err != nil {
			return err
		}
	}
	return nil
}
