package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
// Todos los agregados excluyen filas con soft delete.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountClients cuenta los clientes vivos.
func (r *AnalyticsRepo) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE is_deleted = FALSE`)
}

// CountActiveProjects cuenta los proyectos vivos con is_active = TRUE.
func (r *AnalyticsRepo) CountActiveProjects(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM projects WHERE is_deleted = FALSE AND is_active = TRUE`)
}

// CountInvoicesByPaymentStatus cuenta facturas vivas con un payment_status dado.
func (r *AnalyticsRepo) CountInvoicesByPaymentStatus(ctx context.Context, paymentStatus string) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM invoices WHERE is_deleted = FALSE AND payment_status = $1`,
		paymentStatus)
}

// CountOverdueInvoices cuenta facturas vivas vencidas a la fecha dada.
// Misma clasificación de lectura que el listado de vencidas.
func (r *AnalyticsRepo) CountOverdueInvoices(ctx context.Context, today time.Time) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM invoices
		WHERE is_deleted = FALSE
		  AND due_date::date < $1::date
		  AND payment_status <> $2 AND status <> $3`,
		today, entity.PaymentStatusPaid, entity.InvoiceStatusCancelled)
}

func (r *AnalyticsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics: count: %w", err)
	}
	return n, nil
}

// TotalRevenue suma el total de las facturas vivas pagadas.
func (r *AnalyticsRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE is_deleted = FALSE AND payment_status = $1`,
		entity.PaymentStatusPaid)
}

// PendingPayments suma el total de las facturas vivas ni pagadas ni canceladas.
func (r *AnalyticsRepo) PendingPayments(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE is_deleted = FALSE
		  AND payment_status NOT IN ($1, $2) AND status <> $3`,
		entity.PaymentStatusPaid, entity.PaymentStatusCancelled, entity.InvoiceStatusCancelled)
}

func (r *AnalyticsRepo) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics: sum: %w", err)
	}
	return total, nil
}

// MonthlyRevenueSeries agrupa por mes de paid_at las facturas vivas pagadas
// dentro del rango. Los meses sin pagos simplemente no aparecen; el caso de
// uso rellena los huecos con cero.
func (r *AnalyticsRepo) MonthlyRevenueSeries(ctx context.Context, from, to time.Time) ([]repository.MonthlyRevenueRow, error) {
	const query = `
		SELECT
		    EXTRACT(YEAR FROM paid_at)::int  AS year,
		    EXTRACT(MONTH FROM paid_at)::int AS month,
		    COALESCE(SUM(total_amount), 0)   AS revenue,
		    COUNT(*)                         AS invoice_count
		FROM invoices
		WHERE is_deleted = FALSE
		  AND payment_status = $1
		  AND paid_at BETWEEN $2 AND $3
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.pool.Query(ctx, query, entity.PaymentStatusPaid, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: serie mensual: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenueRow
	for rows.Next() {
		var year, month int
		var row repository.MonthlyRevenueRow
		if err := rows.Scan(&year, &month, &row.Revenue, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("analytics: scan serie mensual: %w", err)
		}
		row.Year = year
		row.Month = time.Month(month)
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProjectStatusCounts conteo de proyectos vivos agrupados por status.
func (r *AnalyticsRepo) ProjectStatusCounts(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT status, COUNT(*) FROM projects
		WHERE is_deleted = FALSE GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics: proyectos por status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics: scan status: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// RecentProjects proyectos vivos más recientes para el feed de actividad.
func (r *AnalyticsRepo) RecentProjects(ctx context.Context, limit int) ([]repository.ProjectActivity, error) {
	const query = `
		SELECT p.id, p.name, COALESCE(c.name, ''), p.status, p.created_at
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		WHERE p.is_deleted = FALSE
		ORDER BY p.created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: proyectos recientes: %w", err)
	}
	defer rows.Close()

	var results []repository.ProjectActivity
	for rows.Next() {
		var row repository.ProjectActivity
		if err := rows.Scan(&row.ID, &row.Name, &row.ClientName, &row.Status, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("analytics: scan proyecto reciente: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RecentInvoices facturas vivas más recientes para el feed de actividad.
func (r *AnalyticsRepo) RecentInvoices(ctx context.Context, limit int) ([]repository.InvoiceActivity, error) {
	const query = `
		SELECT i.id, i.invoice_number, COALESCE(c.name, ''), i.total_amount, i.status, i.created_at
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.is_deleted = FALSE
		ORDER BY i.created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: facturas recientes: %w", err)
	}
	defer rows.Close()

	var results []repository.InvoiceActivity
	for rows.Next() {
		var row repository.InvoiceActivity
		if err := rows.Scan(&row.ID, &row.InvoiceNumber, &row.ClientName, &row.TotalAmount,
			&row.Status, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("analytics: scan factura reciente: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
