package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/analitica-sedes/internal/domain"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

const (
	projectionDays = 30
	// NoDepletionDays centinela "nunca se agota" cuando no hay ventas y el stock sí cuenta.
	NoDepletionDays = 999
)

var (
	hundred         = decimal.NewFromInt(100)
	projectionDec   = decimal.NewFromInt(projectionDays)
	safetyMarginPct = decimal.NewFromFloat(0.2)
)

// ComputeMetrics calcula las métricas derivadas de un producto.
//
//	frecuencia      = vendido / díasDesdePrimeraCompra
//	díasInventario  = floor(stock / frecuencia)  (999 si frecuencia = 0, nil si se ignora stock)
//	proyección30    = frecuencia * 30
//	sugerido        = ceil(max(0, proyección30 + 20% - stockEfectivo))
//
// Las cantidades se operan en decimal para que ceil/floor no arrastren error binario.
func ComputeMetrics(f entity.ProductActivityFacts, ignoreStock bool, now time.Time) (entity.DerivedMetrics, error) {
	if f.ID == "" {
		return entity.DerivedMetrics{}, fmt.Errorf("%w: producto %q", domain.ErrInvalidFacts, f.Name)
	}

	firstPurchase := f.FirstPurchaseAt
	lastPurchase := f.LastPurchaseAt
	if lastPurchase.IsZero() {
		lastPurchase = firstPurchase
	}
	firstSale := f.FirstSaleSinceFirstPurchase
	if firstSale.IsZero() {
		firstSale = firstPurchase
	}

	m := entity.DerivedMetrics{
		DaysSinceFirstPurchase: DaysSince(now, firstPurchase),
		DaysSinceLastPurchase:  DaysSince(now, lastPurchase),
		DaysSinceFirstSale:     DaysSince(now, firstSale),
	}

	sold := decimal.NewFromInt(f.SoldQuantitySinceFirstPurchase)
	days := decimal.NewFromInt(int64(m.DaysSinceFirstPurchase))
	m.DailySellThroughRate = float64(f.SoldQuantitySinceFirstPurchase) / float64(m.DaysSinceFirstPurchase)

	effectiveStock := decimal.Zero
	if !ignoreStock {
		effectiveStock = decimal.NewFromInt(f.CurrentStock)
		doi := DaysOfInventory(f.CurrentStock, f.SoldQuantitySinceFirstPurchase, m.DaysSinceFirstPurchase)
		m.DaysOfInventoryRemaining = &doi
	}

	m.ProjectedSales30Days = sold.Mul(projectionDec).Div(days)
	m.SafetyMargin = m.ProjectedSales30Days.Mul(safetyMarginPct)
	need := m.ProjectedSales30Days.Add(m.SafetyMargin).Sub(effectiveStock)
	if need.IsPositive() {
		m.SuggestedReorderQty = need.Ceil().IntPart()
	}

	m.MarginPct = MarginPct(f.RetailPrice, f.CostUnit)
	m.WholesaleMarginPct = MarginPct(f.WholesalePrice, f.CostUnit)
	m.Urgency = ClassifyUrgency(m.DaysOfInventoryRemaining)
	return m, nil
}

// MarginPct (precio - costo) / precio * 100, redondeado a 2 decimales. 0 si precio ≤ 0.
func MarginPct(price, cost decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(hundred).Round(2)
}

// DaysOfInventory días hasta agotar stock al ritmo vendido/días (999 si no hay ventas).
// stock / (vendido/días) se opera como stock*días/vendido.
func DaysOfInventory(stock, sold int64, days int) int {
	if sold <= 0 {
		return NoDepletionDays
	}
	return int(decimal.NewFromInt(stock).Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(sold)).Floor().IntPart())
}
