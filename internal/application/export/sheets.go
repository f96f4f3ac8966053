package export

import (
	"strconv"
	"strings"
	"time"

	appanalytics "github.com/jhoicas/analitica-sedes/internal/application/analytics"
	calc "github.com/jhoicas/analitica-sedes/internal/domain/analytics"
	"github.com/jhoicas/analitica-sedes/internal/domain/entity"
)

// Tipos de reporte (prefijo del nombre de archivo).
const (
	ReportProjection   = "proyeccion-compras"
	ReportInactivity   = "productos-sin-movimiento"
	ReportTopSellers   = "mas-vendidos"
	ReportProviderAnal = "recompra-proveedor"
)

const notApplicable = "N/A"

var metricsHeaders = []string{
	"Código", "SKU", "Producto", "Proveedor", "Stock actual", "Comprado", "Facturas",
	"Primera compra", "Última compra", "Vendido", "Ventas", "Última venta",
	"Días desde compra", "Frecuencia diaria", "Días de inventario", "Proyección 30 días",
	"Cantidad sugerida", "Costo", "Precio venta", "Margen %", "Margen mayorista %", "Urgencia",
}

func metricsRow(m entity.ProductMetrics) []any {
	var doi any = notApplicable
	if m.DaysOfInventoryRemaining != nil {
		doi = *m.DaysOfInventoryRemaining
	}
	var stock any = m.CurrentStock
	if m.IgnoreStock {
		stock = notApplicable
	}
	return []any{
		m.InternalCode, m.SKU, m.Name, m.ProviderName, stock, m.PurchasedQuantityInRange, m.PurchaseInvoiceCount,
		m.FirstPurchaseAt, m.LastPurchaseAt, m.SoldQuantitySinceFirstPurchase, m.SaleCount, m.LastSaleAt,
		m.DaysSinceFirstPurchase, m.DailySellThroughRate, doi, m.ProjectedSales30Days.Round(2),
		m.SuggestedReorderQty, m.CostUnit, m.RetailPrice, m.MarginPct, m.WholesaleMarginPct, m.Urgency.Label(),
	}
}

func rangeSummary(r calc.DateRange) []SummaryRow {
	mode := "Predefinido"
	if r.Mode == calc.ModeCustom {
		mode = "Personalizado"
	}
	return []SummaryRow{
		{Label: "Modo de rango", Value: mode},
		{Label: "Días analizados", Value: strconv.Itoa(r.Days())},
		{Label: "Fecha inicio", Value: Text(r.Start)},
		{Label: "Fecha fin", Value: Text(r.End)},
	}
}

func header(reportTitle, sede string, generated time.Time, records int) []SummaryRow {
	return []SummaryRow{
		{Label: "Reporte", Value: reportTitle},
		{Label: "Sede", Value: sede},
		{Label: "Generado", Value: generated.Format("2006-01-02 15:04")},
		{Label: "Registros", Value: strconv.Itoa(records)},
	}
}

func urgencySummary(counts map[entity.UrgencyTier]int) []SummaryRow {
	out := make([]SummaryRow, 0, len(entity.UrgencyTiers))
	for _, t := range entity.UrgencyTiers {
		out = append(out, SummaryRow{Label: "Urgencia " + t.Label(), Value: strconv.Itoa(counts[t])})
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// ProjectionSheet hoja de la proyección de compras.
func ProjectionSheet(r *appanalytics.ProjectionReport) Sheet {
	rows := make([][]any, len(r.Items))
	for i, it := range r.Items {
		rows[i] = metricsRow(it)
	}
	const title = "Proyección de compras"
	summary := header(title, r.Sede, r.GeneratedAt, len(rows))
	summary = append(summary, rangeSummary(r.Range)...)
	summary = append(summary, SummaryRow{Label: "Ignorar stock", Value: yesNo(r.IgnoreStock)})
	summary = append(summary, urgencySummary(r.UrgencyCounts)...)

	return Sheet{
		ReportType: ReportProjection,
		Sede:       r.Sede,
		Title:      title,
		Headers:    metricsHeaders,
		Rows:       rows,
		Summary:    summary,
		CreatedAt:  r.GeneratedAt,
	}
}

// InactivitySheet hoja de productos sin movimiento.
func InactivitySheet(r *appanalytics.InactivityReport) Sheet {
	rows := make([][]any, len(r.Items))
	for i, rec := range r.Items {
		reasons := make([]string, len(rec.Reasons))
		for j, reason := range rec.Reasons {
			reasons[j] = reasonLabel(reason)
		}
		rows[i] = []any{
			rec.InternalCode, rec.SKU, rec.Name, rec.CurrentStock, rec.CostUnit,
			rec.LastSaleAt, rec.LastTransferAt, rec.LastPurchaseAt, rec.LastActivityAt,
			rec.DaysInactive, rec.Tier.Label(), strings.Join(reasons, ", "), rec.ObsoleteStockValue.Round(2),
		}
	}
	const title = "Productos sin movimiento"
	summary := header(title, r.Sede, r.GeneratedAt, len(rows))
	summary = append(summary, rangeSummary(r.Range)...)
	summary = append(summary,
		SummaryRow{Label: "Sin actividad desde", Value: Text(r.Cutoff)},
		SummaryRow{Label: "Valor stock obsoleto", Value: Text(r.TotalObsoleteValue)},
	)
	for _, t := range entity.ObsolescenceTiers {
		summary = append(summary, SummaryRow{Label: "Nivel " + t.Label(), Value: strconv.Itoa(r.TierCounts[t])})
	}

	return Sheet{
		ReportType: ReportInactivity,
		Sede:       r.Sede,
		Title:      title,
		Headers: []string{
			"Código", "SKU", "Producto", "Stock actual", "Costo", "Última venta", "Último traslado",
			"Última compra", "Última actividad", "Días sin movimiento", "Nivel", "Motivos", "Valor obsoleto",
		},
		Rows:      rows,
		Summary:   summary,
		CreatedAt: r.GeneratedAt,
	}
}

func reasonLabel(r entity.InactivityReason) string {
	switch r {
	case entity.ReasonNoSales:
		return "Sin ventas"
	case entity.ReasonNoTransfers:
		return "Sin traslados"
	case entity.ReasonNoPurchases:
		return "Sin compras"
	}
	return string(r)
}

// TopSellersSheet hoja del ranking de más vendidos.
func TopSellersSheet(r *appanalytics.TopSellersReport) Sheet {
	rows := make([][]any, len(r.Items))
	for i, p := range r.Items {
		rows[i] = []any{
			p.Rank, p.InternalCode, p.SKU, p.Name, p.QuantitySold, p.TotalSaleValue, p.SaleCount,
			p.FirstSaleAt, p.LastSaleAt, p.CurrentStock, p.DailySellThroughRate, p.DaysOfInventoryRemaining,
			p.Urgency.Label(), p.AverageSalePrice, p.ListMarginPct, p.RealMarginPct,
		}
	}
	const title = "Productos más vendidos"
	rankBy := "Cantidad"
	if r.RankBy == appanalytics.RankByValue {
		rankBy = "Valor"
	}
	summary := header(title, r.Sede, r.GeneratedAt, len(rows))
	summary = append(summary, rangeSummary(r.Range)...)
	summary = append(summary,
		SummaryRow{Label: "Ordenado por", Value: rankBy},
		SummaryRow{Label: "Unidades vendidas", Value: Text(r.TotalQuantity)},
		SummaryRow{Label: "Valor vendido", Value: Text(r.TotalValue)},
	)
	summary = append(summary, urgencySummary(r.UrgencyCounts)...)

	return Sheet{
		ReportType: ReportTopSellers,
		Sede:       r.Sede,
		Title:      title,
		Headers: []string{
			"Posición", "Código", "SKU", "Producto", "Cantidad vendida", "Valor vendido", "Ventas",
			"Primera venta", "Última venta", "Stock actual", "Frecuencia diaria", "Días de inventario",
			"Urgencia", "Precio promedio", "Margen lista %", "Margen real %",
		},
		Rows:      rows,
		Summary:   summary,
		CreatedAt: r.GeneratedAt,
	}
}

// ProviderAnalysisSheet hoja del análisis de recompra por proveedor.
func ProviderAnalysisSheet(r *appanalytics.ProviderAnalysisReport) Sheet {
	rows := make([][]any, len(r.Items))
	for i, it := range r.Items {
		rows[i] = metricsRow(it)
	}
	const title = "Recompra por proveedor"
	provider := r.Query.ProviderID
	if r.Query.All {
		provider = "Todos"
	}
	invoices := "Todas"
	if len(r.Query.InvoiceIDs) > 0 {
		invoices = strings.Join(r.Query.InvoiceIDs, ", ")
	}
	days := "Todo el historial"
	if r.Query.DaysFilter > 0 {
		days = strconv.Itoa(r.Query.DaysFilter) + " días"
	}
	summary := header(title, r.Sede, r.GeneratedAt, len(rows))
	summary = append(summary,
		SummaryRow{Label: "Proveedor", Value: provider},
		SummaryRow{Label: "Facturas", Value: invoices},
		SummaryRow{Label: "Filtro de días", Value: days},
		SummaryRow{Label: "Ignorar stock", Value: yesNo(r.Query.IgnoreStock)},
	)
	summary = append(summary, urgencySummary(r.UrgencyCounts)...)

	return Sheet{
		ReportType: ReportProviderAnal,
		Sede:       r.Sede,
		Title:      title,
		Headers:    metricsHeaders,
		Rows:       rows,
		Summary:    summary,
		CreatedAt:  r.GeneratedAt,
	}
}
