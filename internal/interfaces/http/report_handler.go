package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/dto"
	"github.com/jhoicas/analitica-sedes/internal/application/export"
)

// ReportHandler maneja los cuatro reportes de analítica y su exportación.
type ReportHandler struct {
	projection   *appanalytics.ProjectionUseCase
	obsolescence *appanalytics.ObsolescenceUseCase
	ranking      *appanalytics.RankingUseCase
	provider     *appanalytics.ProviderUseCase
	exporter     *export.Service
	ranges       RangeParser
}

// NewReportHandler construye el handler.
func NewReportHandler(deps RouterDeps) *ReportHandler {
	return &ReportHandler{
		projection:   deps.Projection,
		obsolescence: deps.Obsolescence,
		ranking:      deps.Ranking,
		provider:     deps.Provider,
		exporter:     deps.Exporter,
		ranges:       deps.Ranges,
	}
}

// Projection godoc
// @Summary      Proyección de compras
// @Description  Productos comprados en el rango con ventas desde su primera compra, con días de
//               inventario restante, cantidad sugerida y nivel de urgencia.
// @Tags         reportes
// @Produce      json
// @Param        sede           path   string  true   "Código de la sede (ladorada, manizales)"
// @Param        modo           query  string  false  "predefinido | personalizado"
// @Param        rango          query  int     false  "Días del rango predefinido (15, 30, 60, 90)"
// @Param        fecha_inicio   query  string  false  "YYYY-MM-DD (modo personalizado)"
// @Param        fecha_fin      query  string  false  "YYYY-MM-DD inclusiva (modo personalizado)"
// @Param        ignorar_stock  query  bool    false  "Calcular sin stock actual (nivel HISTÓRICO)"
// @Success      200  {object}  dto.ProjectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/proyeccion-compras [get]
func (h *ReportHandler) Projection(c *fiber.Ctx) error {
	r, err := h.buildProjection(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProjectionResponse(r))
}

// ExportProjection descarga la proyección en XLSX o PDF (?formato=).
func (h *ReportHandler) ExportProjection(c *fiber.Ctx) error {
	return h.exportSheet(c, func() (export.Sheet, error) {
		r, err := h.buildProjection(c)
		if err != nil {
			return export.Sheet{}, err
		}
		return export.ProjectionSheet(r), nil
	})
}

func (h *ReportHandler) buildProjection(c *fiber.Ctx) (*appanalytics.ProjectionReport, error) {
	q, err := reportQuery(c)
	if err != nil {
		return nil, err
	}
	rng, err := h.ranges.Resolve(q)
	if err != nil {
		return nil, err
	}
	return h.projection.BuildProjection(c.UserContext(), c.Params("sede"), rng, q.IgnoreStock)
}

// Inactivity godoc
// @Summary      Productos sin movimiento
// @Description  Productos con stock sin ventas, traslados ni compras desde el inicio del rango,
//               clasificados por días de inactividad, con el valor del stock inmovilizado.
// @Tags         reportes
// @Produce      json
// @Param        sede          path   string  true   "Código de la sede"
// @Param        modo          query  string  false  "predefinido | personalizado"
// @Param        rango         query  int     false  "Días del rango predefinido"
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.InactivityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/productos-sin-movimiento [get]
func (h *ReportHandler) Inactivity(c *fiber.Ctx) error {
	r, err := h.buildInactivity(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInactivityResponse(r))
}

// ExportInactivity descarga los productos sin movimiento.
func (h *ReportHandler) ExportInactivity(c *fiber.Ctx) error {
	return h.exportSheet(c, func() (export.Sheet, error) {
		r, err := h.buildInactivity(c)
		if err != nil {
			return export.Sheet{}, err
		}
		return export.InactivitySheet(r), nil
	})
}

func (h *ReportHandler) buildInactivity(c *fiber.Ctx) (*appanalytics.InactivityReport, error) {
	q, err := reportQuery(c)
	if err != nil {
		return nil, err
	}
	rng, err := h.ranges.Resolve(q)
	if err != nil {
		return nil, err
	}
	return h.obsolescence.BuildInactivityReport(c.UserContext(), c.Params("sede"), rng)
}

// TopSellers godoc
// @Summary      Productos más vendidos
// @Description  Ranking (máximo 100) por cantidad o valor vendido en el rango, con stock actual,
//               días de inventario y márgenes de lista y real.
// @Tags         reportes
// @Produce      json
// @Param        sede           path   string  true   "Código de la sede"
// @Param        modo           query  string  false  "predefinido | personalizado"
// @Param        rango          query  int     false  "Días del rango predefinido"
// @Param        fecha_inicio   query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin      query  string  false  "YYYY-MM-DD"
// @Param        tipo_analisis  query  string  false  "cantidad (default) | valor"
// @Success      200  {object}  dto.TopSellersResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/mas-vendidos [get]
func (h *ReportHandler) TopSellers(c *fiber.Ctx) error {
	r, err := h.buildTopSellers(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTopSellersResponse(r))
}

// ExportTopSellers descarga el ranking de más vendidos.
func (h *ReportHandler) ExportTopSellers(c *fiber.Ctx) error {
	return h.exportSheet(c, func() (export.Sheet, error) {
		r, err := h.buildTopSellers(c)
		if err != nil {
			return export.Sheet{}, err
		}
		return export.TopSellersSheet(r), nil
	})
}

func (h *ReportHandler) buildTopSellers(c *fiber.Ctx) (*appanalytics.TopSellersReport, error) {
	q, err := reportQuery(c)
	if err != nil {
		return nil, err
	}
	by, err := rankBy(q.RankBy)
	if err != nil {
		return nil, err
	}
	rng, err := h.ranges.Resolve(q)
	if err != nil {
		return nil, err
	}
	return h.ranking.BuildTopSellers(c.UserContext(), c.Params("sede"), rng, by)
}

// ProviderAnalysis godoc
// @Summary      Recompra por proveedor
// @Description  Métricas de recompra de los productos de un proveedor (o de todos), opcionalmente
//               limitadas a facturas específicas y a los últimos N días.
// @Tags         reportes
// @Produce      json
// @Param        sede           path   string  true   "Código de la sede"
// @Param        proveedor_id   query  string  true   "ID del proveedor o todos"
// @Param        factura_ids    query  string  false  "IDs de factura separados por coma"
// @Param        filtro_dias    query  string  false  "Días hacia atrás o todos"
// @Param        ignorar_stock  query  bool    false  "Calcular sin stock actual"
// @Success      200  {object}  dto.ProviderAnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/recompra-proveedor [get]
func (h *ReportHandler) ProviderAnalysis(c *fiber.Ctx) error {
	r, err := h.buildProviderAnalysis(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProviderAnalysisResponse(r))
}

// ExportProviderAnalysis descarga el análisis de recompra.
func (h *ReportHandler) ExportProviderAnalysis(c *fiber.Ctx) error {
	return h.exportSheet(c, func() (export.Sheet, error) {
		r, err := h.buildProviderAnalysis(c)
		if err != nil {
			return export.Sheet{}, err
		}
		return export.ProviderAnalysisSheet(r), nil
	})
}

func (h *ReportHandler) buildProviderAnalysis(c *fiber.Ctx) (*appanalytics.ProviderAnalysisReport, error) {
	q, err := reportQuery(c)
	if err != nil {
		return nil, err
	}
	pq, err := providerQuery(q)
	if err != nil {
		return nil, err
	}
	return h.provider.BuildProviderAnalysis(c.UserContext(), c.Params("sede"), pq)
}

// exportSheet valida el formato antes de consultar la sede y responde el archivo como adjunto.
func (h *ReportHandler) exportSheet(c *fiber.Ctx, build func() (export.Sheet, error)) error {
	format, err := export.ParseFormat(c.Query("formato"))
	if err != nil {
		return respondError(c, err)
	}
	writer, err := h.exporter.Writer(format)
	if err != nil {
		return respondError(c, err)
	}

	sheet, err := build()
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, sheet); err != nil {
		return respondError(c, err)
	}

	name := export.FileName(sheet, format)
	zerolog.Ctx(c.UserContext()).Info().
		Str("file", name).
		Int("rows", len(sheet.Rows)).
		Int("bytes", buf.Len()).
		Msg("reporte exportado")

	c.Attachment(name)
	c.Set(fiber.HeaderContentType, writer.ContentType())
	return c.Send(buf.Bytes())
}

func reportQuery(c *fiber.Ctx) (dto.ReportQuery, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return q, errInvalidQuery
	}
	return q, nil
}
