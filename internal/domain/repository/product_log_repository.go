package repository

import (
	"context"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

// ProductLogRepository define el puerto para el log de auditoría (append-only;
// la única eliminación permitida es el cascade al borrar un producto).
type ProductLogRepository interface {
	Append(ctx context.Context, log *entity.ProductLog) error
	DeleteByProduct(ctx context.Context, productID int64) error
}
