package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRangeAggregate ventas de un producto dentro del rango (filtro duro en ambos extremos).
type SaleRangeAggregate struct {
	ProductInfo
	QuantitySold   int64
	TotalSaleValue decimal.Decimal
	SaleCount      int64
	FirstSaleAt    time.Time
	LastSaleAt     time.Time
}

// RankedProduct fila del ranking de más vendidos.
type RankedProduct struct {
	SaleRangeAggregate
	Rank         int
	CurrentStock int64

	RangeDaysSpan            int
	DailySellThroughRate     float64
	DaysOfInventoryRemaining *int
	Urgency                  UrgencyTier

	AverageSalePrice decimal.Decimal // TotalSaleValue / QuantitySold
	ListMarginPct    decimal.Decimal // sobre precio de catálogo
	RealMarginPct    decimal.Decimal // sobre precio realizado
}
