package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/tu-usuario/freelanceflow/internal/application/analytics"
	"github.com/tu-usuario/freelanceflow/internal/application/auth"
	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/internal/application/clients"
	"github.com/tu-usuario/freelanceflow/internal/application/projects"
	infraemail "github.com/tu-usuario/freelanceflow/internal/infrastructure/email"
	infrapdf "github.com/tu-usuario/freelanceflow/internal/infrastructure/pdf"
	"github.com/tu-usuario/freelanceflow/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/freelanceflow/internal/interfaces/http"
	"github.com/tu-usuario/freelanceflow/pkg/config"
	"github.com/tu-usuario/freelanceflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones de base de datos")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clientUC := clients.NewUseCase(clientRepo)
	projectUC := projects.NewUseCase(projectRepo, clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, clientRepo, projectRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, clientRepo, projectRepo, pdfGenerator)

	// Sin SMTP_HOST configurado los envíos solo se loguean (modo desarrollo).
	var emailSender billing.InvoiceEmailSender
	if cfg.SMTP.Host != "" {
		emailSender = infraemail.NewSMTPSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST no configurado, los emails de facturas solo se loguean")
		emailSender = infraemail.NewLogSender(log.Component("email"))
	}
	emailUC := billing.NewEmailUseCase(invoiceRepo, pdfUC, emailSender)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FreelanceFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		ProjectUC:   projectUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		EmailUC:     emailUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
