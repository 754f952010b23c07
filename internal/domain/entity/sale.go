package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada por un retailer. Inmutable una vez
// creada; el ledger de inventario nunca la modifica.
type Sale struct {
	ID         int64
	RetailerID int64
	CreatedAt  time.Time
}

// SaleItem es una línea de venta. LineTotal y Quantity alimentan los totales
// de los reportes.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	LineTotal decimal.Decimal
}
