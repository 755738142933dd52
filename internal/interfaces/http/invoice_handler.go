package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturas, incluida la
// descarga de PDF y el envío por email.
type InvoiceHandler struct {
	uc      *billing.InvoiceUseCase
	pdfUC   *billing.PDFUseCase
	emailUC *billing.EmailUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase, emailUC *billing.EmailUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC, emailUC: emailUC}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	invoice, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, invoice)
}

// List GET /api/invoices?limit=50&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListOverdue GET /api/invoices/overdue
func (h *InvoiceHandler) ListOverdue(c *fiber.Ctx) error {
	list, err := h.uc.ListOverdue()
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListPending GET /api/invoices/pending
func (h *InvoiceHandler) ListPending(c *fiber.Ctx) error {
	list, err := h.uc.ListPending()
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListByClient GET /api/invoices/client/:clientId
func (h *InvoiceHandler) ListByClient(c *fiber.Ctx) error {
	list, err := h.uc.ListByClient(c.Params("clientId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListByProject GET /api/invoices/project/:projectId
func (h *InvoiceHandler) ListByProject(c *fiber.Ctx) error {
	list, err := h.uc.ListByProject(c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, invoice)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	invoice, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, invoice)
}

// UpdateStatus PUT /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	invoice, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, invoice)
}

// UpdatePaymentStatus PUT /api/invoices/:id/payment-status
func (h *InvoiceHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if in.PaymentStatus == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	invoice, err := h.uc.UpdatePaymentStatus(c.Params("id"), in.PaymentStatus, in.PaidAt)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, invoice)
}

// MarkPaid POST /api/invoices/:id/mark-paid
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	invoice, err := h.uc.MarkPaid(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, invoice, "factura marcada como pagada")
}

// MarkOverdue POST /api/invoices/:id/mark-overdue
func (h *InvoiceHandler) MarkOverdue(c *fiber.Ctx) error {
	invoice, err := h.uc.MarkOverdue(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, invoice, "factura marcada como vencida")
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// SendEmail POST /api/invoices/:id/send-email
func (h *InvoiceHandler) SendEmail(c *fiber.Ctx) error {
	if err := h.emailUC.SendInvoice(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, nil, "factura enviada por email")
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, nil, "factura eliminada")
}
