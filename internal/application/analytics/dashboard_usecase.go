// Package analytics contiene los casos de uso de solo lectura del dashboard:
// estadísticas globales, actividad reciente e ingresos mensuales.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

const (
	defaultActivityCount = 10
	revenueMonths        = 12
)

// DashboardUseCase agrega las métricas del negocio para el dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye los contadores y totales globales.
//
// Las consultas independientes corren en paralelo; la primera que falle
// aborta la respuesta completa.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	type countResult struct {
		n   int
		err error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type seriesResult struct {
		rows []repository.MonthlyRevenueRow
		err  error
	}

	clientsCh := make(chan countResult, 1)
	projectsCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)
	overdueCh := make(chan countResult, 1)
	revenueCh := make(chan sumResult, 1)
	monthlyCh := make(chan seriesResult, 1)
	paymentsCh := make(chan sumResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountClients(ctx)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountActiveProjects(ctx)
		projectsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountInvoicesByPaymentStatus(ctx, entity.PaymentStatusPending)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountOverdueInvoices(ctx, now)
		overdueCh <- countResult{n, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.TotalRevenue(ctx)
		revenueCh <- sumResult{total, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.MonthlyRevenueSeries(ctx, monthStart, monthEnd)
		monthlyCh <- seriesResult{rows, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.PendingPayments(ctx)
		paymentsCh <- sumResult{total, err}
	}()

	clients := <-clientsCh
	projects := <-projectsCh
	pending := <-pendingCh
	overdue := <-overdueCh
	revenue := <-revenueCh
	monthly := <-monthlyCh
	payments := <-paymentsCh

	for _, r := range []countResult{clients, projects, pending, overdue} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: conteos: %w", r.err)
		}
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos totales: %w", revenue.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", monthly.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: pagos pendientes: %w", payments.err)
	}

	monthRevenue := decimal.Zero
	for _, row := range monthly.rows {
		monthRevenue = monthRevenue.Add(row.Revenue)
	}

	return &dto.DashboardStatsResponse{
		TotalClients:    clients.n,
		ActiveProjects:  projects.n,
		PendingInvoices: pending.n,
		OverdueInvoices: overdue.n,
		TotalRevenue:    revenue.total.Round(2),
		MonthlyRevenue:  monthRevenue.Round(2),
		PendingPayments: payments.total.Round(2),
	}, nil
}

// GetRecentActivities mezcla los proyectos y facturas más recientes en un
// solo feed ordenado por fecha de creación descendente. Cada mitad aporta
// count/2 entradas como máximo.
func (uc *DashboardUseCase) GetRecentActivities(ctx context.Context, count int) ([]dto.ActivityResponse, error) {
	if count <= 0 {
		count = defaultActivityCount
	}
	half := count / 2
	if half == 0 {
		half = 1
	}

	projectRows, err := uc.analyticsRepo.RecentProjects(ctx, half)
	if err != nil {
		return nil, fmt.Errorf("dashboard: proyectos recientes: %w", err)
	}
	invoiceRows, err := uc.analyticsRepo.RecentInvoices(ctx, half)
	if err != nil {
		return nil, fmt.Errorf("dashboard: facturas recientes: %w", err)
	}

	activities := make([]dto.ActivityResponse, 0, len(projectRows)+len(invoiceRows))
	for _, p := range projectRows {
		activities = append(activities, dto.ActivityResponse{
			Type:       "project",
			ID:         p.ID,
			Title:      p.Name,
			ClientName: p.ClientName,
			Status:     p.Status,
			OccurredAt: p.CreatedAt,
		})
	}
	for _, inv := range invoiceRows {
		amount := inv.TotalAmount
		activities = append(activities, dto.ActivityResponse{
			Type:       "invoice",
			ID:         inv.ID,
			Title:      inv.InvoiceNumber,
			ClientName: inv.ClientName,
			Status:     inv.Status,
			Amount:     &amount,
			OccurredAt: inv.CreatedAt,
		})
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].OccurredAt.After(activities[j].OccurredAt)
	})
	if len(activities) > count {
		activities = activities[:count]
	}
	return activities, nil
}

// GetMonthlyRevenue serie de ingresos pagados de los últimos 12 meses,
// incluido el actual. Los meses sin facturas pagadas salen en cero.
func (uc *DashboardUseCase) GetMonthlyRevenue(ctx context.Context) ([]dto.MonthlyRevenueResponse, error) {
	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := currentMonth.AddDate(0, -(revenueMonths - 1), 0)
	to := currentMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	rows, err := uc.analyticsRepo.MonthlyRevenueSeries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard: serie mensual: %w", err)
	}
	byMonth := make(map[string]repository.MonthlyRevenueRow, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%04d-%02d", row.Year, int(row.Month))
		byMonth[key] = row
	}

	out := make([]dto.MonthlyRevenueResponse, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		month := from.AddDate(0, i, 0)
		key := month.Format("2006-01")
		point := dto.MonthlyRevenueResponse{Month: key, Revenue: decimal.Zero}
		if row, ok := byMonth[key]; ok {
			point.Revenue = row.Revenue.Round(2)
			point.InvoiceCount = row.InvoiceCount
		}
		out = append(out, point)
	}
	return out, nil
}

// GetProjectStatusStats conteo de proyectos vivos por status.
func (uc *DashboardUseCase) GetProjectStatusStats(ctx context.Context) ([]dto.ProjectStatusStatsResponse, error) {
	counts, err := uc.analyticsRepo.ProjectStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: proyectos por status: %w", err)
	}
	statuses := []string{
		entity.ProjectStatusPlanning,
		entity.ProjectStatusInProgress,
		entity.ProjectStatusOnHold,
		entity.ProjectStatusCompleted,
		entity.ProjectStatusCancelled,
	}
	out := make([]dto.ProjectStatusStatsResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, dto.ProjectStatusStatsResponse{Status: s, Count: counts[s]})
	}
	return out, nil
}
