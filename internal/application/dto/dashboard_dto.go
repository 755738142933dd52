package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse contadores y totales globales para GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalClients    int             `json:"total_clients"`
	ActiveProjects  int             `json:"active_projects"`
	PendingInvoices int             `json:"pending_invoices"`
	OverdueInvoices int             `json:"overdue_invoices"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
}

// ActivityResponse entrada del feed de actividad reciente.
// Type es "project" o "invoice"; Amount solo viene en facturas.
type ActivityResponse struct {
	Type        string           `json:"type"`
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	ClientName  string           `json:"client_name,omitempty"`
	Status      string           `json:"status"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// MonthlyRevenueResponse punto de la serie de ingresos de los últimos 12 meses.
type MonthlyRevenueResponse struct {
	Month        string          `json:"month"` // formato 2006-01
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
}

// ProjectStatusStatsResponse conteo de proyectos por status.
type ProjectStatusStatsResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
