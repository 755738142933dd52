package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	domainbilling "github.com/tu-usuario/freelanceflow/internal/domain/billing"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// maxNumberAttempts reintentos de creación cuando el número de factura choca
// con el constraint único (dos requests generando el mismo consecutivo).
const maxNumberAttempts = 3

// InvoiceUseCase casos de uso para facturas.
// Cabecera y líneas se escriben siempre dentro de una transacción.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// buildItems valida las líneas del request y las convierte a entidades con
// el total de línea calculado en el servidor.
func buildItems(invoiceID string, in []dto.InvoiceItemRequest) ([]*entity.InvoiceItem, []domainbilling.Line, error) {
	if len(in) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	items := make([]*entity.InvoiceItem, 0, len(in))
	lines := make([]domainbilling.Line, 0, len(in))
	for i, it := range in {
		desc := strings.TrimSpace(it.Description)
		if desc == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  domainbilling.LineTotal(it.Quantity, it.UnitPrice),
			Position:    i + 1,
		})
		lines = append(lines, domainbilling.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return items, lines, nil
}

// validateClientAndProject aplica los guards de creación: el cliente debe
// existir y estar activo; el proyecto (opcional) debe existir, pertenecer al
// cliente y estar activo.
func (uc *InvoiceUseCase) validateClientAndProject(clientID, projectID string) error {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return domain.ErrNotFound
	}
	if !client.IsActive() {
		return domain.ErrClientInactive
	}
	if projectID == "" {
		return nil
	}
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil || project == nil {
		return domain.ErrNotFound
	}
	if project.ClientID != clientID {
		return domain.ErrInvalidInput
	}
	if !project.IsActive {
		return domain.ErrProjectInactive
	}
	return nil
}

// Create crea una factura en draft/pending con sus líneas, en una sola
// transacción. El número se genera en el servidor; si otro request gana el
// mismo consecutivo, el constraint único dispara un reintento con la
// secuencia recalculada.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || in.TaxRate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateClientAndProject(in.ClientID, in.ProjectID); err != nil {
		return nil, err
	}
	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate.Before(issueDate) {
		return nil, domain.ErrInvalidInput
	}

	invoiceID := uuid.New().String()
	items, lines, err := buildItems(invoiceID, in.Items)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.ComputeTotals(lines, in.TaxRate)

	now := time.Now()
	inv := &entity.Invoice{
		ID:            invoiceID,
		ClientID:      in.ClientID,
		ProjectID:     in.ProjectID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		SubTotal:      totals.SubTotal,
		TaxRate:       in.TaxRate,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.TotalAmount,
		Status:        entity.InvoiceStatusDraft,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		count, err := uc.invoiceRepo.CountCreatedInMonth(now.Year(), now.Month())
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = domainbilling.FormatInvoiceNumber(now.Year(), now.Month(), count+1)

		err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for _, item := range items {
				if err := invoiceRepo.CreateItem(item); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return uc.GetByID(inv.ID)
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, domain.ErrConflict
}

// GetByID obtiene una factura con nombres y líneas.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	row, err := uc.invoiceRepo.GetByIDWithNames(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	resp := dto.InvoiceFromRow(row)
	resp.Items = dto.ItemsFromEntities(items)
	return &resp, nil
}

// List lista facturas con paginación.
func (uc *InvoiceUseCase) List(limit, offset int) ([]dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.InvoicesFromRows(rows), nil
}

// ListByClient lista las facturas de un cliente.
func (uc *InvoiceUseCase) ListByClient(clientID string) ([]dto.InvoiceResponse, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.invoiceRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return dto.InvoicesFromRows(rows), nil
}

// ListByProject lista las facturas de un proyecto.
func (uc *InvoiceUseCase) ListByProject(projectID string) ([]dto.InvoiceResponse, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.invoiceRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return dto.InvoicesFromRows(rows), nil
}

// ListOverdue lista las facturas vencidas a la fecha de hoy. La clasificación
// es de lectura: due_date < hoy, no pagada, no cancelada. Nunca se persiste.
func (uc *InvoiceUseCase) ListOverdue() ([]dto.InvoiceResponse, error) {
	rows, err := uc.invoiceRepo.ListOverdue(time.Now())
	if err != nil {
		return nil, err
	}
	return dto.InvoicesFromRows(rows), nil
}

// ListPending lista las facturas con payment_status = pending.
func (uc *InvoiceUseCase) ListPending() ([]dto.InvoiceResponse, error) {
	rows, err := uc.invoiceRepo.ListByPaymentStatus(entity.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	return dto.InvoicesFromRows(rows), nil
}

// Update actualiza cabecera y líneas de una factura no pagada. Las líneas se
// reemplazan en bloque y los totales se recalculan, todo en una transacción.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsPaid() {
		return nil, domain.ErrInvoicePaid
	}
	if in.ClientID == "" || in.TaxRate.LessThan(decimal.Zero) || !entity.ValidInvoiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateClientAndProject(in.ClientID, in.ProjectID); err != nil {
		return nil, err
	}
	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate.Before(issueDate) {
		return nil, domain.ErrInvalidInput
	}
	items, lines, err := buildItems(inv.ID, in.Items)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.ComputeTotals(lines, in.TaxRate)

	inv.ClientID = in.ClientID
	inv.ProjectID = in.ProjectID
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	inv.SubTotal = totals.SubTotal
	inv.TaxRate = in.TaxRate
	inv.TaxAmount = totals.TaxAmount
	inv.TotalAmount = totals.TotalAmount
	inv.Status = in.Status
	inv.Notes = in.Notes
	inv.UpdatedAt = time.Now()

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItems(inv.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(inv.ID)
}

// UpdateStatus cambia solo el status de la factura.
func (uc *InvoiceUseCase) UpdateStatus(id, status string) (*dto.InvoiceResponse, error) {
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// UpdatePaymentStatus cambia el payment_status. Pasar a paid también marca
// status = paid y fija paid_at; a partir de ahí la factura es inmutable.
func (uc *InvoiceUseCase) UpdatePaymentStatus(id, paymentStatus string, paidAt *time.Time) (*dto.InvoiceResponse, error) {
	if !entity.ValidPaymentStatus(paymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.PaymentStatus = paymentStatus
	if paymentStatus == entity.PaymentStatusPaid {
		inv.Status = entity.InvoiceStatusPaid
		if paidAt != nil {
			inv.PaidAt = paidAt
		} else {
			now := time.Now()
			inv.PaidAt = &now
		}
	}
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// MarkPaid atajo para marcar la factura como pagada ahora.
func (uc *InvoiceUseCase) MarkPaid(id string) (*dto.InvoiceResponse, error) {
	return uc.UpdatePaymentStatus(id, entity.PaymentStatusPaid, nil)
}

// MarkOverdue marca manualmente el payment_status como overdue, sin tocar
// el status de la factura.
func (uc *InvoiceUseCase) MarkOverdue(id string) (*dto.InvoiceResponse, error) {
	return uc.UpdatePaymentStatus(id, entity.PaymentStatusOverdue, nil)
}

// Delete hace soft delete de una factura no pagada.
func (uc *InvoiceUseCase) Delete(id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.IsPaid() {
		return domain.ErrInvoicePaid
	}
	return uc.invoiceRepo.SoftDelete(id)
}
