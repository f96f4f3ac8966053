package dto

import (
	"time"

	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

// ReportQuery parámetros de consulta comunes a los reportes (nombres usados por el frontend).
type ReportQuery struct {
	Mode        string `query:"modo"`          // predefinido | personalizado
	Range       string `query:"rango"`         // 15, 30, 60, 90
	Start       string `query:"fecha_inicio"`  // YYYY-MM-DD
	End         string `query:"fecha_fin"`     // YYYY-MM-DD (inclusive)
	IgnoreStock bool   `query:"ignorar_stock"`
	RankBy      string `query:"tipo_analisis"` // cantidad | valor
	ProviderID  string `query:"proveedor_id"`  // id o "todos"
	InvoiceIDs  string `query:"factura_ids"`   // lista separada por comas
	DaysFilter  string `query:"filtro_dias"`   // número de días o "todos"
	Format      string `query:"formato"`       // xlsx | pdf (solo export)
}

// RangeDTO rango resuelto, devuelto para mostrarlo en pantalla.
type RangeDTO struct {
	Mode  string    `json:"mode"`
	Days  int       `json:"days"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewRangeDTO convierte el rango resuelto.
func NewRangeDTO(r calc.DateRange) RangeDTO {
	return RangeDTO{Mode: r.Mode, Days: r.Days(), Start: r.Start, End: r.End}
}

// ProductDTO datos de catálogo comunes a todas las filas.
type ProductDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	SKU            string          `json:"sku"`
	InternalCode   string          `json:"internal_code"`
	Cost           decimal.Decimal `json:"cost"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	MinimumStock   int64           `json:"minimum_stock"`
}

func newProductDTO(p entity.ProductInfo) ProductDTO {
	return ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		SKU:            p.SKU,
		InternalCode:   p.InternalCode,
		Cost:           p.CostUnit,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		MinimumStock:   p.MinimumStock,
	}
}

// ProductMetricsDTO fila de proyección de compras / recompra por proveedor.
type ProductMetricsDTO struct {
	ProductDTO

	ProviderName         string          `json:"provider_name,omitempty"`
	ProviderCount        int64           `json:"provider_count"`
	CurrentStock         int64           `json:"current_stock"`
	PurchasedQuantity    int64           `json:"purchased_quantity"`
	PurchaseInvoiceCount int64           `json:"purchase_invoice_count"`
	AveragePurchasePrice decimal.Decimal `json:"average_purchase_price"`
	FirstPurchaseAt      time.Time       `json:"first_purchase_at"`
	LastPurchaseAt       time.Time       `json:"last_purchase_at"`

	SoldQuantity     int64           `json:"sold_quantity"`
	SaleCount        int64           `json:"sale_count"`
	FirstSaleAt      *time.Time      `json:"first_sale_at"`
	LastSaleAt       *time.Time      `json:"last_sale_at"`
	AverageSalePrice decimal.Decimal `json:"average_sale_price"`

	DaysSinceFirstPurchase   int             `json:"days_since_first_purchase"`
	DaysSinceLastPurchase    int             `json:"days_since_last_purchase"`
	DaysSinceFirstSale       int             `json:"days_since_first_sale"`
	DailySellThroughRate     float64         `json:"daily_sell_through_rate"`
	DaysOfInventoryRemaining *int            `json:"days_of_inventory_remaining"` // null = stock ignorado
	ProjectedSales30Days     decimal.Decimal `json:"projected_sales_30_days"`
	SafetyMargin             decimal.Decimal `json:"safety_margin"`
	SuggestedReorderQty      int64           `json:"suggested_reorder_qty"`
	MarginPct                decimal.Decimal `json:"margin_pct"`
	WholesaleMarginPct       decimal.Decimal `json:"wholesale_margin_pct"`
	Urgency                  string          `json:"urgency"`
	UrgencyLabel             string          `json:"urgency_label"`
}

// NewProductMetricsDTO convierte una fila calculada.
func NewProductMetricsDTO(m entity.ProductMetrics) ProductMetricsDTO {
	return ProductMetricsDTO{
		ProductDTO:               newProductDTO(m.ProductInfo),
		ProviderName:             m.ProviderName,
		ProviderCount:            m.ProviderCount,
		CurrentStock:             m.CurrentStock,
		PurchasedQuantity:        m.PurchasedQuantityInRange,
		PurchaseInvoiceCount:     m.PurchaseInvoiceCount,
		AveragePurchasePrice:     m.AveragePurchasePrice.Round(2),
		FirstPurchaseAt:          m.FirstPurchaseAt,
		LastPurchaseAt:           m.LastPurchaseAt,
		SoldQuantity:             m.SoldQuantitySinceFirstPurchase,
		SaleCount:                m.SaleCount,
		FirstSaleAt:              optionalTime(m.FirstSaleSinceFirstPurchase),
		LastSaleAt:               optionalTime(m.LastSaleAt),
		AverageSalePrice:         m.AverageSalePrice.Round(2),
		DaysSinceFirstPurchase:   m.DaysSinceFirstPurchase,
		DaysSinceLastPurchase:    m.DaysSinceLastPurchase,
		DaysSinceFirstSale:       m.DaysSinceFirstSale,
		DailySellThroughRate:     m.DailySellThroughRate,
		DaysOfInventoryRemaining: m.DaysOfInventoryRemaining,
		ProjectedSales30Days:     m.ProjectedSales30Days.Round(2),
		SafetyMargin:             m.SafetyMargin.Round(2),
		SuggestedReorderQty:      m.SuggestedReorderQty,
		MarginPct:                m.MarginPct,
		WholesaleMarginPct:       m.WholesaleMarginPct,
		Urgency:                  string(m.Urgency),
		UrgencyLabel:             m.Urgency.Label(),
	}
}

func newProductMetricsDTOs(items []entity.ProductMetrics) []ProductMetricsDTO {
	out := make([]ProductMetricsDTO, len(items))
	for i, it := range items {
		out[i] = NewProductMetricsDTO(it)
	}
	return out
}

func urgencyCountsDTO(counts map[entity.UrgencyTier]int) map[string]int {
	out := make(map[string]int, len(counts))
	for tier, n := range counts {
		out[string(tier)] = n
	}
	return out
}

// ProjectionResponse respuesta de GET /api/sedes/:sede/proyeccion-compras.
type ProjectionResponse struct {
	Sede          string              `json:"sede"`
	Range         RangeDTO            `json:"range"`
	IgnoreStock   bool                `json:"ignore_stock"`
	Total         int                 `json:"total"`
	UrgencyCounts map[string]int      `json:"urgency_counts"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Items         []ProductMetricsDTO `json:"items"`
}

// NewProjectionResponse convierte el reporte.
func NewProjectionResponse(r *appanalytics.ProjectionReport) ProjectionResponse {
	return ProjectionResponse{
		Sede:          r.Sede,
		Range:         NewRangeDTO(r.Range),
		IgnoreStock:   r.IgnoreStock,
		Total:         len(r.Items),
		UrgencyCounts: urgencyCountsDTO(r.UrgencyCounts),
		GeneratedAt:   r.GeneratedAt,
		Items:         newProductMetricsDTOs(r.Items),
	}
}

// InactivityDTO fila de productos sin movimiento.
type InactivityDTO struct {
	ProductDTO

	CurrentStock       int64           `json:"current_stock"`
	LastSaleAt         *time.Time      `json:"last_sale_at"`
	LastTransferAt     *time.Time      `json:"last_transfer_at"`
	LastPurchaseAt     *time.Time      `json:"last_purchase_at"`
	LastActivityAt     time.Time       `json:"last_activity_at"`
	DaysInactive       int             `json:"days_inactive"`
	Tier               string          `json:"tier"`
	TierLabel          string          `json:"tier_label"`
	Reasons            []string        `json:"reasons"`
	ObsoleteStockValue decimal.Decimal `json:"obsolete_stock_value"`
}

// InactivityResponse respuesta de GET /api/sedes/:sede/productos-sin-movimiento.
type InactivityResponse struct {
	Sede               string          `json:"sede"`
	Range              RangeDTO        `json:"range"`
	Cutoff             time.Time       `json:"cutoff"`
	Total              int             `json:"total"`
	TierCounts         map[string]int  `json:"tier_counts"`
	TotalObsoleteValue decimal.Decimal `json:"total_obsolete_value"`
	GeneratedAt        time.Time       `json:"generated_at"`
	Items              []InactivityDTO `json:"items"`
}

// NewInactivityResponse convierte el reporte.
func NewInactivityResponse(r *appanalytics.InactivityReport) InactivityResponse {
	items := make([]InactivityDTO, len(r.Items))
	for i, rec := range r.Items {
		reasons := make([]string, len(rec.Reasons))
		for j, reason := range rec.Reasons {
			reasons[j] = string(reason)
		}
		items[i] = InactivityDTO{
			ProductDTO:         newProductDTO(rec.ProductInfo),
			CurrentStock:       rec.CurrentStock,
			LastSaleAt:         rec.LastSaleAt,
			LastTransferAt:     rec.LastTransferAt,
			LastPurchaseAt:     rec.LastPurchaseAt,
			LastActivityAt:     rec.LastActivityAt,
			DaysInactive:       rec.DaysInactive,
			Tier:               string(rec.Tier),
			TierLabel:          rec.Tier.Label(),
			Reasons:            reasons,
			ObsoleteStockValue: rec.ObsoleteStockValue.Round(2),
		}
	}
	counts := make(map[string]int, len(r.TierCounts))
	for tier, n := range r.TierCounts {
		counts[string(tier)] = n
	}
	return InactivityResponse{
		Sede:               r.Sede,
		Range:              NewRangeDTO(r.Range),
		Cutoff:             r.Cutoff,
		Total:              len(items),
		TierCounts:         counts,
		TotalObsoleteValue: r.TotalObsoleteValue.Round(2),
		GeneratedAt:        r.GeneratedAt,
		Items:              items,
	}
}

// RankedProductDTO fila del ranking de más vendidos.
type RankedProductDTO struct {
	ProductDTO

	Rank                     int             `json:"rank"`
	QuantitySold             int64           `json:"quantity_sold"`
	TotalSaleValue           decimal.Decimal `json:"total_sale_value"`
	SaleCount                int64           `json:"sale_count"`
	FirstSaleAt              time.Time       `json:"first_sale_at"`
	LastSaleAt               time.Time       `json:"last_sale_at"`
	CurrentStock             int64           `json:"current_stock"`
	RangeDaysSpan            int             `json:"range_days_span"`
	DailySellThroughRate     float64         `json:"daily_sell_through_rate"`
	DaysOfInventoryRemaining *int            `json:"days_of_inventory_remaining"`
	Urgency                  string          `json:"urgency"`
	UrgencyLabel             string          `json:"urgency_label"`
	AverageSalePrice         decimal.Decimal `json:"average_sale_price"`
	ListMarginPct            decimal.Decimal `json:"list_margin_pct"`
	RealMarginPct            decimal.Decimal `json:"real_margin_pct"`
}

// TopSellersResponse respuesta de GET /api/sedes/:sede/mas-vendidos.
type TopSellersResponse struct {
	Sede          string             `json:"sede"`
	Range         RangeDTO           `json:"range"`
	RankBy        string             `json:"rank_by"`
	Total         int                `json:"total"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalValue    decimal.Decimal    `json:"total_value"`
	UrgencyCounts map[string]int     `json:"urgency_counts"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Items         []RankedProductDTO `json:"items"`
}

// NewTopSellersResponse convierte el reporte.
func NewTopSellersResponse(r *appanalytics.TopSellersReport) TopSellersResponse {
	items := make([]RankedProductDTO, len(r.Items))
	for i, p := range r.Items {
		items[i] = RankedProductDTO{
			ProductDTO:               newProductDTO(p.ProductInfo),
			Rank:                     p.Rank,
			QuantitySold:             p.QuantitySold,
			TotalSaleValue:           p.TotalSaleValue,
			SaleCount:                p.SaleCount,
			FirstSaleAt:              p.FirstSaleAt,
			LastSaleAt:               p.LastSaleAt,
			CurrentStock:             p.CurrentStock,
			RangeDaysSpan:            p.RangeDaysSpan,
			DailySellThroughRate:     p.DailySellThroughRate,
			DaysOfInventoryRemaining: p.DaysOfInventoryRemaining,
			Urgency:                  string(p.Urgency),
			UrgencyLabel:             p.Urgency.Label(),
			AverageSalePrice:         p.AverageSalePrice,
			ListMarginPct:            p.ListMarginPct,
			RealMarginPct:            p.RealMarginPct,
		}
	}
	return TopSellersResponse{
		Sede:          r.Sede,
		Range:         NewRangeDTO(r.Range),
		RankBy:        string(r.RankBy),
		Total:         len(items),
		TotalQuantity: r.TotalQuantity,
		TotalValue:    r.TotalValue,
		UrgencyCounts: urgencyCountsDTO(r.UrgencyCounts),
		GeneratedAt:   r.GeneratedAt,
		Items:         items,
	}
}

// ProviderAnalysisResponse respuesta de GET /api/sedes/:sede/recompra-proveedor.
type ProviderAnalysisResponse struct {
	Sede          string              `json:"sede"`
	ProviderID    string              `json:"provider_id"` // "todos" para todos los proveedores
	InvoiceIDs    []string            `json:"invoice_ids"`
	IgnoreStock   bool                `json:"ignore_stock"`
	DaysFilter    int                 `json:"days_filter"` // 0 = todo el historial
	Since         *time.Time          `json:"since"`
	Total         int                 `json:"total"`
	UrgencyCounts map[string]int      `json:"urgency_counts"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Items         []ProductMetricsDTO `json:"items"`
}

// NewProviderAnalysisResponse convierte el reporte.
func NewProviderAnalysisResponse(r *appanalytics.ProviderAnalysisReport) ProviderAnalysisResponse {
	providerID := r.Query.ProviderID
	if r.Query.All {
		providerID = AllProviders
	}
	invoices := r.Query.InvoiceIDs
	if invoices == nil {
		invoices = []string{}
	}
	return ProviderAnalysisResponse{
		Sede:          r.Sede,
		ProviderID:    providerID,
		InvoiceIDs:    invoices,
		IgnoreStock:   r.Query.IgnoreStock,
		DaysFilter:    r.Query.DaysFilter,
		Since:         r.Since,
		Total:         len(r.Items),
		UrgencyCounts: urgencyCountsDTO(r.UrgencyCounts),
		GeneratedAt:   r.GeneratedAt,
		Items:         newProductMetricsDTOs(r.Items),
	}
}

// AllProviders valor de proveedor_id / filtro_dias que significa "sin filtro".
const AllProviders = "todos"

// ProviderDTO proveedor con totales de compra.
type ProviderDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	InvoiceCount        int64     `json:"invoice_count"`
	FirstPurchaseAt     time.Time `json:"first_purchase_at"`
	LastPurchaseAt      time.Time `json:"last_purchase_at"`
	TotalUnitsPurchased int64     `json:"total_units_purchased"`
}

// NewProviderDTOs convierte el listado.
func NewProviderDTOs(in []entity.Provider) []ProviderDTO {
	out := make([]ProviderDTO, len(in))
	for i, p := range in {
		out[i] = ProviderDTO(p)
	}
	return out
}

// InvoiceDTO factura de compra.
type InvoiceDTO struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ProviderName  string          `json:"provider_name,omitempty"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CreatedAt     time.Time       `json:"created_at"`
	Observation   string          `json:"observation,omitempty"`
	ProductCount  int64           `json:"product_count"`
	TotalQuantity int64           `json:"total_quantity"`
}

// NewInvoiceDTOs convierte el listado.
func NewInvoiceDTOs(in []entity.PurchaseInvoice) []InvoiceDTO {
	out := make([]InvoiceDTO, len(in))
	for i, inv := range in {
		out[i] = InvoiceDTO(inv)
	}
	return out
}

// ProductSummaryDTO resultado de búsqueda de productos.
type ProductSummaryDTO struct {
	ProductDTO
	CurrentStock int64 `json:"current_stock"`
}

// NewProductSummaryDTOs convierte el listado.
func NewProductSummaryDTOs(in []entity.ProductSummary) []ProductSummaryDTO {
	out := make([]ProductSummaryDTO, len(in))
	for i, p := range in {
		out[i] = ProductSummaryDTO{ProductDTO: newProductDTO(p.ProductInfo), CurrentStock: p.CurrentStock}
	}
	return out
}

// ProductAnalysisResponse respuesta de GET /api/sedes/:sede/productos/:id/analisis.
type ProductAnalysisResponse struct {
	Sede        string            `json:"sede"`
	IgnoreStock bool              `json:"ignore_stock"`
	GeneratedAt time.Time         `json:"generated_at"`
	Product     ProductMetricsDTO `json:"product"`
}

// NewProductAnalysisResponse convierte el análisis individual.
func NewProductAnalysisResponse(a *appanalytics.ProductAnalysis) ProductAnalysisResponse {
	return ProductAnalysisResponse{
		Sede:        a.Sede,
		IgnoreStock: a.Item.IgnoreStock,
		GeneratedAt: a.GeneratedAt,
		Product:     NewProductMetricsDTO(a.Item),
	}
}

// SedeDTO sede configurada.
type SedeDTO struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	HeadquarterIDs []int64 `json:"headquarter_ids"`
}

// NewSedeDTOs convierte el listado de sedes.
func NewSedeDTOs(in []entity.Sede) []SedeDTO {
	out := make([]SedeDTO, len(in))
	for i, s := range in {
		out[i] = SedeDTO(s)
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ListResponse listado simple de una sede (proveedores, facturas, productos).
type ListResponse[T any] struct {
	Sede  string `json:"sede"`
	Total int    `json:"total"`
	Items []T    `json:"items"`
}

// NewListResponse arma el listado; nunca devuelve items null.
func NewListResponse[T any](sede string, items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Sede: sede, Total: len(items), Items: items}
}
