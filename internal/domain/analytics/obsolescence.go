package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

// ObsolescenceFloor límite inferior de última actividad. Productos sin actividad desde antes
// de esta fecha se consideran descontinuados y no se reportan.
var ObsolescenceFloor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Umbrales de días sin actividad por nivel de obsolescencia.
const (
	veryObsoleteDays = 90
	obsoleteDays     = 60
	inactiveDays     = 30
)

// ActivityDates últimas fechas de venta, traslado y compra de un producto (cero = nunca).
type ActivityDates struct {
	LastSaleAt     time.Time
	LastTransferAt time.Time
	LastPurchaseAt time.Time
}

// BuildInactivity arma el registro de inactividad de un producto con stock.
// ok = false cuando la última actividad no cae en [ObsolescenceFloor, cutoff).
func BuildInactivity(p entity.StockedProduct, a ActivityDates, cutoff, now time.Time) (entity.InactivityRecord, bool) {
	last := latest(a.LastSaleAt, a.LastTransferAt, a.LastPurchaseAt)
	if !last.Before(cutoff) || last.Before(ObsolescenceFloor) {
		return entity.InactivityRecord{}, false
	}

	rec := entity.InactivityRecord{
		ProductInfo:        p.ProductInfo,
		CurrentStock:       p.CurrentStock,
		LastSaleAt:         optionalTime(a.LastSaleAt),
		LastTransferAt:     optionalTime(a.LastTransferAt),
		LastPurchaseAt:     optionalTime(a.LastPurchaseAt),
		LastActivityAt:     last,
		DaysInactive:       DaysSince(now, last),
		ObsoleteStockValue: decimal.NewFromInt(p.CurrentStock).Mul(p.CostUnit),
	}
	rec.Tier = ClassifyObsolescence(rec.DaysInactive)
	rec.Reasons = inactivityReasons(a, cutoff)
	return rec, true
}

// ClassifyObsolescence nivel según días sin actividad.
func ClassifyObsolescence(daysInactive int) entity.ObsolescenceTier {
	switch {
	case daysInactive >= veryObsoleteDays:
		return entity.TierVeryObsolete
	case daysInactive >= obsoleteDays:
		return entity.TierObsolete
	case daysInactive >= inactiveDays:
		return entity.TierInactive
	default:
		return entity.TierActive
	}
}

func inactivityReasons(a ActivityDates, cutoff time.Time) []entity.InactivityReason {
	stale := func(t time.Time) bool { return t.IsZero() || t.Before(cutoff) }

	reasons := make([]entity.InactivityReason, 0, 3)
	if stale(a.LastSaleAt) {
		reasons = append(reasons, entity.ReasonNoSales)
	}
	if stale(a.LastTransferAt) {
		reasons = append(reasons, entity.ReasonNoTransfers)
	}
	if stale(a.LastPurchaseAt) {
		reasons = append(reasons, entity.ReasonNoPurchases)
	}
	return reasons
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
