package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/export"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sedes        repository.LedgerResolver
	Projection   *appanalytics.ProjectionUseCase
	Obsolescence *appanalytics.ObsolescenceUseCase
	Ranking      *appanalytics.RankingUseCase
	Provider     *appanalytics.ProviderUseCase
	Product      *appanalytics.ProductUseCase
	Exporter     *export.Service
	Ranges       RangeParser
	Logger       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger))

	catalog := NewCatalogHandler(deps)
	api.Get("/sedes", catalog.ListSedes)

	sede := api.Group("/sedes/:sede")

	// Reportes (JSON y descarga)
	reports := NewReportHandler(deps)
	sede.Get("/proyeccion-compras", reports.Projection)
	sede.Get("/proyeccion-compras/export", reports.ExportProjection)
	sede.Get("/productos-sin-movimiento", reports.Inactivity)
	sede.Get("/productos-sin-movimiento/export", reports.ExportInactivity)
	sede.Get("/mas-vendidos", reports.TopSellers)
	sede.Get("/mas-vendidos/export", reports.ExportTopSellers)
	sede.Get("/recompra-proveedor", reports.ProviderAnalysis)
	sede.Get("/recompra-proveedor/export", reports.ExportProviderAnalysis)

	// Catálogo para filtros y validación individual
	sede.Get("/proveedores", catalog.ListProviders)
	sede.Get("/proveedores/:id/facturas", catalog.ListProviderInvoices)
	sede.Get("/facturas", catalog.ListInvoices)
	sede.Get("/productos", catalog.SearchProducts)
	sede.Get("/productos/:id/analisis", catalog.AnalyzeProduct)
}
