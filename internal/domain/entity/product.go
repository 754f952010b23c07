package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// StockLevel es derivado: SIEMPRE debe ser igual a la suma de Quantity de sus
// lotes no eliminados. El único escritor de StockLevel es el ledger de lotes.
type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	Price         decimal.Decimal
	MinStockLevel int // umbral de alerta de bajo stock (>= 0)
	StockLevel    int // derivado de los lotes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
