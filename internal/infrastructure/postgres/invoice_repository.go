package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Todas las lecturas filtran is_deleted = FALSE. El constraint único sobre
// invoice_number convierte los choques de numeración en ErrDuplicate, que el
// caso de uso usa para reintentar.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `i.id, i.invoice_number, i.client_id, COALESCE(i.project_id::text, ''),
	i.issue_date, i.due_date, i.sub_total, i.tax_rate, i.tax_amount, i.total_amount,
	i.status, i.payment_status, i.paid_at, i.notes, i.is_deleted, i.created_at, i.updated_at`

// invoiceWithNamesQuery LEFT JOIN para traer nombres aunque el cliente o el
// proyecto tengan soft delete posterior.
const invoiceWithNamesQuery = `
	SELECT ` + invoiceColumns + `, COALESCE(c.name, ''), COALESCE(p.name, '')
	FROM invoices i
	LEFT JOIN clients c ON c.id = i.client_id
	LEFT JOIN projects p ON p.id = i.project_id
	WHERE i.is_deleted = FALSE`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.ProjectID,
		&inv.IssueDate, &inv.DueDate, &inv.SubTotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount,
		&inv.Status, &inv.PaymentStatus, &inv.PaidAt, &inv.Notes, &inv.IsDeleted,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanInvoiceWithNames(row pgx.Row) (*repository.InvoiceWithNames, error) {
	var out repository.InvoiceWithNames
	inv := &out.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.ProjectID,
		&inv.IssueDate, &inv.DueDate, &inv.SubTotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount,
		&inv.Status, &inv.PaymentStatus, &inv.PaidAt, &inv.Notes, &inv.IsDeleted,
		&inv.CreatedAt, &inv.UpdatedAt,
		&out.ClientName, &out.ProjectName,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_number, client_id, project_id, issue_date, due_date,
			sub_total, tax_rate, tax_amount, total_amount, status, payment_status, paid_at,
			notes, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNumber, invoice.ClientID, nullIfEmpty(invoice.ProjectID),
		invoice.IssueDate, invoice.DueDate, invoice.SubTotal, invoice.TaxRate,
		invoice.TaxAmount, invoice.TotalAmount, invoice.Status, invoice.PaymentStatus,
		invoice.PaidAt, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura viva por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i WHERE i.id = $1 AND i.is_deleted = FALSE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDWithNames obtiene una factura viva con nombres de cliente y proyecto.
func (r *InvoiceRepo) GetByIDWithNames(id string) (*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + ` AND i.id = $1`
	row, err := scanInvoiceWithNames(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice with names: %w", err)
	}
	return row, nil
}

// GetItems obtiene las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, total_price, position
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.Position); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista facturas vivas con paginación, más recientes primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + ` ORDER BY i.created_at DESC LIMIT $1 OFFSET $2`
	return r.queryInvoices(query, limit, offset)
}

// ListByClient lista las facturas vivas de un cliente.
func (r *InvoiceRepo) ListByClient(clientID string) ([]*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + ` AND i.client_id = $1 ORDER BY i.created_at DESC`
	return r.queryInvoices(query, clientID)
}

// ListByProject lista las facturas vivas de un proyecto.
func (r *InvoiceRepo) ListByProject(projectID string) ([]*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + ` AND i.project_id = $1 ORDER BY i.created_at DESC`
	return r.queryInvoices(query, projectID)
}

// ListOverdue lista las facturas vivas vencidas a la fecha dada: due_date
// anterior a hoy, no pagadas (por ninguno de los dos campos) y no canceladas.
// Una factura que vence hoy todavía no está vencida.
func (r *InvoiceRepo) ListOverdue(today time.Time) ([]*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + `
		AND i.due_date::date < $1::date
		AND i.payment_status <> $2 AND i.status <> $3
		ORDER BY i.due_date`
	return r.queryInvoices(query, today, entity.PaymentStatusPaid, entity.InvoiceStatusCancelled)
}

// ListByPaymentStatus lista las facturas vivas con un payment_status dado.
func (r *InvoiceRepo) ListByPaymentStatus(paymentStatus string) ([]*repository.InvoiceWithNames, error) {
	query := invoiceWithNamesQuery + ` AND i.payment_status = $1 ORDER BY i.due_date`
	return r.queryInvoices(query, paymentStatus)
}

func (r *InvoiceRepo) queryInvoices(query string, args ...any) ([]*repository.InvoiceWithNames, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*repository.InvoiceWithNames
	for rows.Next() {
		inv, err := scanInvoiceWithNames(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una factura.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $2, project_id = $3, issue_date = $4, due_date = $5,
		    sub_total = $6, tax_rate = $7, tax_amount = $8, total_amount = $9,
		    status = $10, payment_status = $11, paid_at = $12, notes = $13, updated_at = $14
		WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, nullIfEmpty(invoice.ProjectID), invoice.IssueDate,
		invoice.DueDate, invoice.SubTotal, invoice.TaxRate, invoice.TaxAmount,
		invoice.TotalAmount, invoice.Status, invoice.PaymentStatus, invoice.PaidAt,
		invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteItems borra todas las líneas de una factura (reemplazo en bloque).
func (r *InvoiceRepo) DeleteItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// SoftDelete marca la factura como eliminada. Las líneas quedan, pero toda
// lectura pasa por la cabecera así que dejan de ser visibles.
func (r *InvoiceRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	return nil
}

// CountCreatedInMonth cuenta facturas vivas creadas en el mes calendario.
func (r *InvoiceRepo) CountCreatedInMonth(year int, month time.Month) (int, error) {
	query := `
		SELECT COUNT(*) FROM invoices
		WHERE is_deleted = FALSE
		  AND EXTRACT(YEAR FROM created_at) = $1
		  AND EXTRACT(MONTH FROM created_at) = $2`
	var n int
	if err := r.q.QueryRow(context.Background(), query, year, int(month)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices in month: %w", err)
	}
	return n, nil
}
