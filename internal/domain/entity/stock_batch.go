package entity

import "time"

// StockBatch representa un lote de stock de un producto.
// Ciclo de vida: se crea con Quantity > 0 y fecha de expiración opcional;
// Quantity solo decrece (disposiciones), nunca aumenta; el lote es eliminable
// únicamente cuando Quantity == 0.
type StockBatch struct {
	ID             int64
	ProductID      int64
	Quantity       int
	ExpirationDate *time.Time // nil si el lote no expira
	CreatedAt      time.Time
	Reason         string // motivo de ingreso (compra, devolución, ajuste...)
}

// Expired indica si el lote expira en o antes de la fecha de corte.
// Lotes sin fecha de expiración nunca expiran.
func (b *StockBatch) Expired(cutoff time.Time) bool {
	return b.ExpirationDate != nil && !b.ExpirationDate.After(cutoff)
}
