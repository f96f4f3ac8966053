package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInfo datos de catálogo de un producto tal como los entrega el ledger de la sede.
type ProductInfo struct {
	ID             string
	Name           string
	Description    string
	SKU            string
	InternalCode   string
	CostUnit       decimal.Decimal // costo unitario (products.cost)
	RetailPrice    decimal.Decimal // precio detal
	WholesalePrice decimal.Decimal // precio mayorista
	MinimumStock   int64
}

// ProductSummary resultado de la búsqueda de productos (validación individual).
type ProductSummary struct {
	ProductInfo
	CurrentStock int64
}

// Provider proveedor con sus totales de compra en la sede.
type Provider struct {
	ID                  string
	Name                string
	InvoiceCount        int64
	FirstPurchaseAt     time.Time
	LastPurchaseAt      time.Time
	TotalUnitsPurchased int64
}

// PurchaseInvoice factura de compra (cabecera) con totales de sus líneas.
type PurchaseInvoice struct {
	ID            string
	InvoiceNumber string
	ProviderName  string
	TotalValue    decimal.Decimal
	CreatedAt     time.Time
	Observation   string
	ProductCount  int64
	TotalQuantity int64
}
