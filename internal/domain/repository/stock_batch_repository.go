package repository

import (
	"context"
	"time"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

// StockBatchRepository define el puerto de persistencia para lotes de stock (DIP).
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id int64) (*entity.StockBatch, error)
	// GetForUpdate obtiene el lote bloqueando su fila dentro de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.StockBatch, error)
	// DecrementQuantity descuenta qty solo si el lote tiene al menos qty
	// unidades (update condicional en el store). Si la condición no se cumple
	// devuelve domain.ErrInsufficientQuantity sin modificar nada.
	DecrementQuantity(ctx context.Context, id int64, qty int) error
	// UpdateMeta modifica solo metadatos (expiración y motivo); la cantidad es
	// inmutable por esta vía.
	UpdateMeta(ctx context.Context, id int64, expiration *time.Time, reason string) error
	// SumQuantityByProduct devuelve la suma de Quantity de los lotes del
	// producto (el valor que stock_level debe igualar).
	SumQuantityByProduct(ctx context.Context, productID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
}
