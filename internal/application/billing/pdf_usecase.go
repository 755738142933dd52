package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		generator:   generator,
	}
}

// BuildDocument carga cabecera, cliente, nombre de proyecto y líneas de una
// factura. Lo comparten la descarga de PDF y el envío por email.
func (uc *PDFUseCase) BuildDocument(invoiceID string) (*InvoiceDocument, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil || client == nil {
		return nil, fmt.Errorf("pdf: obtener cliente de la factura: %w", domain.ErrNotFound)
	}
	projectName := ""
	if inv.ProjectID != "" {
		if project, pErr := uc.projectRepo.GetByID(inv.ProjectID); pErr == nil && project != nil {
			projectName = project.Name
		}
	}
	items, err := uc.invoiceRepo.GetItems(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	return &InvoiceDocument{
		Invoice:     inv,
		Client:      client,
		ProjectName: projectName,
		Items:       items,
	}, nil
}

// DownloadInvoicePDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.BuildDocument(invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = PDFFilename(doc.Invoice.InvoiceNumber)
	return pdfBytes, filename, nil
}

// PDFFilename nombre de archivo para el PDF de una factura.
func PDFFilename(invoiceNumber string) string {
	return fmt.Sprintf("invoice_%s.pdf", invoiceNumber)
}
