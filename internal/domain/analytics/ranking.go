package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

// ComputeRanking métricas de un producto vendido dentro del rango.
// La frecuencia se mide sobre el lapso primera–última venta del rango (+1 día), no sobre el
// tiempo desde la compra. El stock nunca se ignora en este reporte.
func ComputeRanking(s entity.SaleRangeAggregate, currentStock int64) entity.RankedProduct {
	r := entity.RankedProduct{
		SaleRangeAggregate: s,
		CurrentStock:       currentStock,
		RangeDaysSpan:      max(1, DaysBetween(s.FirstSaleAt, s.LastSaleAt)+1),
	}
	r.DailySellThroughRate = float64(s.QuantitySold) / float64(r.RangeDaysSpan)

	doi := DaysOfInventory(currentStock, s.QuantitySold, r.RangeDaysSpan)
	r.DaysOfInventoryRemaining = &doi
	r.Urgency = ClassifyUrgency(&doi)

	avgPrice := decimal.Zero
	if s.QuantitySold > 0 {
		avgPrice = s.TotalSaleValue.Div(decimal.NewFromInt(s.QuantitySold))
	}
	r.AverageSalePrice = avgPrice.Round(2)
	r.ListMarginPct = MarginPct(s.RetailPrice, s.CostUnit)
	r.RealMarginPct = MarginPct(avgPrice, s.CostUnit)
	return r
}
