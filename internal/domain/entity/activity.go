package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductActivityFacts hechos crudos de compra, venta y stock de un producto para un análisis.
// Los campos de venta solo cuentan ventas en o después de FirstPurchaseAt.
// Un time.Time cero significa "sin dato".
type ProductActivityFacts struct {
	ProductInfo

	CurrentStock int64 // forzado a 0 en modo ignorar stock

	// Compras (rango de análisis o subconjunto proveedor/factura)
	PurchasedQuantityInRange int64
	PurchaseInvoiceCount     int64
	FirstPurchaseAt          time.Time
	LastPurchaseAt           time.Time
	AveragePurchasePrice     decimal.Decimal
	ProviderName             string
	ProviderCount            int64

	// Ventas desde la primera compra
	SoldQuantitySinceFirstPurchase int64
	SaleCount                      int64
	FirstSaleSinceFirstPurchase    time.Time
	LastSaleAt                     time.Time
	AverageSalePrice               decimal.Decimal
}

// UrgencyTier clasificación por días de inventario restante.
type UrgencyTier string

const (
	UrgencyCritical   UrgencyTier = "CRITICAL"   // ≤7 días
	UrgencyUrgent     UrgencyTier = "URGENT"     // 8–14
	UrgencyAttention  UrgencyTier = "ATTENTION"  // 15–30
	UrgencyOK         UrgencyTier = "OK"         // >30
	UrgencyHistorical UrgencyTier = "HISTORICAL" // stock ignorado
)

// UrgencyTiers orden de presentación de los niveles.
var UrgencyTiers = []UrgencyTier{
	UrgencyCritical, UrgencyUrgent, UrgencyAttention, UrgencyOK, UrgencyHistorical,
}

// Label etiqueta visible en reportes.
func (t UrgencyTier) Label() string {
	switch t {
	case UrgencyCritical:
		return "CRÍTICO"
	case UrgencyUrgent:
		return "URGENTE"
	case UrgencyAttention:
		return "ATENCIÓN"
	case UrgencyOK:
		return "OK"
	case UrgencyHistorical:
		return "HISTÓRICO"
	}
	return string(t)
}

// DerivedMetrics métricas calculadas por producto.
type DerivedMetrics struct {
	DaysSinceFirstPurchase int
	DaysSinceLastPurchase  int
	DaysSinceFirstSale     int

	DailySellThroughRate     float64
	DaysOfInventoryRemaining *int // nil cuando se ignora el stock
	ProjectedSales30Days     decimal.Decimal
	SafetyMargin             decimal.Decimal
	SuggestedReorderQty      int64

	MarginPct          decimal.Decimal // sobre precio detal
	WholesaleMarginPct decimal.Decimal // sobre precio mayorista
	Urgency            UrgencyTier
}

// ProductMetrics fila de reporte: hechos + métricas derivadas.
type ProductMetrics struct {
	ProductActivityFacts
	DerivedMetrics
	IgnoreStock bool
}
