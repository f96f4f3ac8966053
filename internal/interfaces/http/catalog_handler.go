package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	"github.com/jhoicas/analitica-sedes/internal/application/dto"
	"github.com/jhoicas/analitica-sedes/internal/domain/repository"
)

// CatalogHandler listados de apoyo para los filtros del frontend: sedes, proveedores,
// facturas y búsqueda/validación de productos.
type CatalogHandler struct {
	sedes    repository.LedgerResolver
	provider *appanalytics.ProviderUseCase
	product  *appanalytics.ProductUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(deps RouterDeps) *CatalogHandler {
	return &CatalogHandler{sedes: deps.Sedes, provider: deps.Provider, product: deps.Product}
}

// ListSedes godoc
// @Summary      Sedes configuradas
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}  dto.SedeDTO
// @Router       /api/sedes [get]
func (h *CatalogHandler) ListSedes(c *fiber.Ctx) error {
	return c.JSON(dto.NewSedeDTOs(h.sedes.Sedes()))
}

// ListProviders godoc
// @Summary      Proveedores con compras en la sede
// @Tags         catalogo
// @Produce      json
// @Param        sede  path  string  true  "Código de la sede"
// @Success      200  {object}  dto.ListResponse[dto.ProviderDTO]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/proveedores [get]
func (h *CatalogHandler) ListProviders(c *fiber.Ctx) error {
	sede := c.Params("sede")
	out, err := h.provider.ListProviders(c.UserContext(), sede)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(sede, dto.NewProviderDTOs(out)))
}

// ListProviderInvoices godoc
// @Summary      Facturas de compra de un proveedor
// @Tags         catalogo
// @Produce      json
// @Param        sede  path  string  true  "Código de la sede"
// @Param        id    path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceDTO]
// @Router       /api/sedes/{sede}/proveedores/{id}/facturas [get]
func (h *CatalogHandler) ListProviderInvoices(c *fiber.Ctx) error {
	sede := c.Params("sede")
	out, err := h.provider.ListProviderInvoices(c.UserContext(), sede, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(sede, dto.NewInvoiceDTOs(out)))
}

// ListInvoices godoc
// @Summary      Facturas de compra de la sede
// @Tags         catalogo
// @Produce      json
// @Param        sede  path  string  true  "Código de la sede"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceDTO]
// @Router       /api/sedes/{sede}/facturas [get]
func (h *CatalogHandler) ListInvoices(c *fiber.Ctx) error {
	sede := c.Params("sede")
	out, err := h.provider.ListInvoices(c.UserContext(), sede)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(sede, dto.NewInvoiceDTOs(out)))
}

// SearchProducts godoc
// @Summary      Buscar productos
// @Description  Por nombre, SKU o código interno (mínimo 2 caracteres, máximo 50 resultados).
// @Tags         catalogo
// @Produce      json
// @Param        sede      path   string  true  "Código de la sede"
// @Param        busqueda  query  string  true  "Texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.ProductSummaryDTO]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/productos [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	sede := c.Params("sede")
	out, err := h.product.SearchProducts(c.UserContext(), sede, c.Query("busqueda"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(sede, dto.NewProductSummaryDTOs(out)))
}

// AnalyzeProduct godoc
// @Summary      Análisis individual de un producto
// @Description  Métricas de recompra sobre todo el historial de compras del producto.
// @Tags         catalogo
// @Produce      json
// @Param        sede           path   string  true   "Código de la sede"
// @Param        id             path   string  true   "ID del producto"
// @Param        ignorar_stock  query  bool    false  "Calcular sin stock actual"
// @Success      200  {object}  dto.ProductAnalysisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sedes/{sede}/productos/{id}/analisis [get]
func (h *CatalogHandler) AnalyzeProduct(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.product.AnalyzeProduct(c.UserContext(), c.Params("sede"), c.Params("id"), q.IgnoreStock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductAnalysisResponse(out))
}
