package repository

import (
	"context"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// StockLevel solo se modifica vía AdjustStockLevel dentro de una transacción
// del ledger; ningún otro componente escribe ese campo.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE):
	// serializa en el store las operaciones concurrentes sobre el mismo producto.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStockLevel suma delta (puede ser negativo) al stock derivado.
	AdjustStockLevel(ctx context.Context, id int64, delta int) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
