package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/analytics"
	"github.com/tu-usuario/freelanceflow/internal/application/auth"
	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/internal/application/clients"
	"github.com/tu-usuario/freelanceflow/internal/application/projects"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ClientUC    *clients.UseCase
	ProjectUC   *projects.UseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	EmailUC     *billing.EmailUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Las rutas fijas (active, search, overdue...) van antes que las de :id para
// que Fiber no las capture como parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login y register públicos; el resto con token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/active", clientHandler.ListActive)
	clientsGroup.Get("/search", clientHandler.Search)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Put("/:id/status", clientHandler.UpdateStatus)
	clientsGroup.Delete("/:id", clientHandler.Delete)

	// Projects
	projectsGroup := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projectsGroup.Post("/", projectHandler.Create)
	projectsGroup.Get("/", projectHandler.List)
	projectsGroup.Get("/active", projectHandler.ListActive)
	projectsGroup.Get("/client/:clientId", projectHandler.ListByClient)
	projectsGroup.Get("/:id", projectHandler.GetByID)
	projectsGroup.Put("/:id", projectHandler.Update)
	projectsGroup.Put("/:id/status", projectHandler.UpdateStatus)
	projectsGroup.Put("/:id/active-status", projectHandler.UpdateActiveStatus)
	projectsGroup.Delete("/:id", projectHandler.Delete)

	// Invoices
	invoicesGroup := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.EmailUC)
	invoicesGroup.Post("/", invoiceHandler.Create)
	invoicesGroup.Get("/", invoiceHandler.List)
	invoicesGroup.Get("/overdue", invoiceHandler.ListOverdue)
	invoicesGroup.Get("/pending", invoiceHandler.ListPending)
	invoicesGroup.Get("/client/:clientId", invoiceHandler.ListByClient)
	invoicesGroup.Get("/project/:projectId", invoiceHandler.ListByProject)
	invoicesGroup.Get("/:id", invoiceHandler.GetByID)
	invoicesGroup.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoicesGroup.Put("/:id", invoiceHandler.Update)
	invoicesGroup.Put("/:id/status", invoiceHandler.UpdateStatus)
	invoicesGroup.Put("/:id/payment-status", invoiceHandler.UpdatePaymentStatus)
	invoicesGroup.Post("/:id/mark-paid", invoiceHandler.MarkPaid)
	invoicesGroup.Post("/:id/mark-overdue", invoiceHandler.MarkOverdue)
	invoicesGroup.Post("/:id/send-email", invoiceHandler.SendEmail)
	invoicesGroup.Delete("/:id", invoiceHandler.Delete)

	// Dashboard
	dashboardGroup := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboardGroup.Get("/stats", dashboardHandler.Stats)
	dashboardGroup.Get("/recent-activities", dashboardHandler.RecentActivities)
	dashboardGroup.Get("/monthly-revenue", dashboardHandler.MonthlyRevenue)
	dashboardGroup.Get("/project-status-stats", dashboardHandler.ProjectStatusStats)
}
