package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenueRow ingreso pagado de un mes calendario.
type MonthlyRevenueRow struct {
	Year         int
	Month        time.Month
	Revenue      decimal.Decimal
	InvoiceCount int
}

// ProjectActivity fila ligera de proyecto para el feed de actividad reciente.
type ProjectActivity struct {
	ID         string
	Name       string
	ClientName string
	Status     string
	CreatedAt  time.Time
}

// InvoiceActivity fila ligera de factura para el feed de actividad reciente.
type InvoiceActivity struct {
	ID            string
	InvoiceNumber string
	ClientName    string
	TotalAmount   decimal.Decimal
	Status        string
	CreatedAt     time.Time
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Los agregados se calculan en SQL; el caso de uso solo combina resultados.
type AnalyticsRepository interface {
	CountClients(ctx context.Context) (int, error)
	CountActiveProjects(ctx context.Context) (int, error)
	CountInvoicesByPaymentStatus(ctx context.Context, paymentStatus string) (int, error)
	CountOverdueInvoices(ctx context.Context, today time.Time) (int, error)
	// TotalRevenue suma de TotalAmount de facturas con payment_status = paid.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	// MonthlyRevenueSeries agrupa por mes de PaidAt las facturas pagadas del rango.
	MonthlyRevenueSeries(ctx context.Context, from, to time.Time) ([]MonthlyRevenueRow, error)
	// PendingPayments suma de TotalAmount de facturas ni pagadas ni canceladas.
	PendingPayments(ctx context.Context) (decimal.Decimal, error)
	// ProjectStatusCounts conteo de proyectos vivos por status.
	ProjectStatusCounts(ctx context.Context) (map[string]int, error)
	RecentProjects(ctx context.Context, limit int) ([]ProjectActivity, error)
	RecentInvoices(ctx context.Context, limit int) ([]InvoiceActivity, error)
}
