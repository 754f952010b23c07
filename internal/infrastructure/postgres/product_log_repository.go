package postgres

import (
	"context"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

var _ repository.ProductLogRepository = (*ProductLogRepo)(nil)

// ProductLogRepo implementación del puerto ProductLogRepository sobre PostgreSQL.
type ProductLogRepo struct {
	q Querier
}

// NewProductLogRepository construye el adaptador del log de auditoría.
func NewProductLogRepository(q Querier) *ProductLogRepo {
	return &ProductLogRepo{q: q}
}

// Append inserta un registro de auditoría. El log es append-only: no hay
// Update y el único Delete es el cascade por producto.
func (r *ProductLogRepo) Append(ctx context.Context, log *entity.ProductLog) error {
	query := `
		INSERT INTO product_logs (id, product_id, user_id, action_type, log_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, log.ID, log.ProductID, log.UserID, log.ActionType, log.LogTime, log.Notes)
	if err != nil {
		return wrapStoreErr("append product log", err)
	}
	return nil
}

// DeleteByProduct elimina los registros del producto (cascade de DeleteProduct).
func (r *ProductLogRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_logs WHERE product_id = $1`, productID); err != nil {
		return wrapStoreErr("delete product logs", err)
	}
	return nil
}
