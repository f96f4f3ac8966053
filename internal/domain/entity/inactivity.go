package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockedProduct producto con stock positivo en la sede (candidato a obsolescencia).
type StockedProduct struct {
	ProductInfo
	CurrentStock int64
}

// ObsolescenceTier severidad de la inactividad.
type ObsolescenceTier string

const (
	TierVeryObsolete ObsolescenceTier = "VERY_OBSOLETE" // ≥90 días
	TierObsolete     ObsolescenceTier = "OBSOLETE"      // 60–89
	TierInactive     ObsolescenceTier = "INACTIVE"      // 30–59
	TierActive       ObsolescenceTier = "ACTIVE"        // <30
)

// ObsolescenceTiers orden de presentación.
var ObsolescenceTiers = []ObsolescenceTier{TierVeryObsolete, TierObsolete, TierInactive, TierActive}

// Label etiqueta visible en reportes.
func (t ObsolescenceTier) Label() string {
	switch t {
	case TierVeryObsolete:
		return "MUY OBSOLETO"
	case TierObsolete:
		return "OBSOLETO"
	case TierInactive:
		return "INACTIVO"
	case TierActive:
		return "ACTIVO"
	}
	return string(t)
}

// InactivityReason tipo de actividad ausente en la ventana.
type InactivityReason string

const (
	ReasonNoSales     InactivityReason = "NoSales"
	ReasonNoTransfers InactivityReason = "NoTransfers"
	ReasonNoPurchases InactivityReason = "NoPurchases"
)

// InactivityRecord fila del reporte de productos sin movimiento.
type InactivityRecord struct {
	ProductInfo
	CurrentStock int64

	LastSaleAt     *time.Time
	LastTransferAt *time.Time
	LastPurchaseAt *time.Time
	LastActivityAt time.Time

	DaysInactive       int
	Tier               ObsolescenceTier
	Reasons            []InactivityReason
	ObsoleteStockValue decimal.Decimal // stock * costo
}
