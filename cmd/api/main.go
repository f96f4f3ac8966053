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

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/export"
	"github.com/jhoicas/analitica-sedes/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/analitica-sedes/internal/infrastructure/pdf"
	"github.com/jhoicas/analitica-sedes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/analitica-sedes/internal/interfaces/http"
	"github.com/jhoicas/analitica-sedes/pkg/config"
	"github.com/jhoicas/analitica-sedes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("sedes", len(cfg.Sedes)).
		Msg("iniciando aplicación")

	// Un pool por sede; cada base es independiente.
	ctx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	registry, err := postgres.NewRegistry(ctx, cfg.Sedes)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer registry.Close()
	for _, s := range registry.Sedes() {
		log.Info().Str("sede", s.Code).Ints64("headquarters", s.HeadquarterIDs).Msg("sede conectada")
	}

	opts := appanalytics.Options{QueryTimeout: cfg.Report.QueryTimeout}
	projectionUC := appanalytics.NewProjectionUseCase(registry, opts)
	obsolescenceUC := appanalytics.NewObsolescenceUseCase(registry, opts)
	rankingUC := appanalytics.NewRankingUseCase(registry, opts)
	providerUC := appanalytics.NewProviderUseCase(registry, opts)
	productUC := appanalytics.NewProductUseCase(registry, opts)

	// Exportación: XLSX (excelize) y PDF (maroto)
	exporter := export.NewService(excel.NewWriter(), infrapdf.NewTableWriter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Report.QueryTimeout + time.Second*30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Analítica de Sedes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sedes:        registry,
		Projection:   projectionUC,
		Obsolescence: obsolescenceUC,
		Ranking:      rankingUC,
		Provider:     providerUC,
		Product:      productUC,
		Exporter:     exporter,
		Ranges: httpRouter.RangeParser{
			Location:    cfg.Report.Location,
			AllowedDays: cfg.Report.AllowedDays,
			DefaultDays: cfg.Report.DefaultDays,
		},
		Logger: log.Zerolog(),
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
