package entity

import "time"

// Tipos de acción registrados en el log de productos. Eliminar un producto no
// registra acción: su cascade borra el log completo del producto.
const (
	ActionAddBatch    = "ADD_BATCH"
	ActionDispose     = "DISPOSE"
	ActionDeleteBatch = "DELETE_BATCH"
	ActionEditBatch   = "EDIT_BATCH"
	ActionEditProduct = "EDIT_PRODUCT"
)

// ProductLog es un registro de auditoría append-only: se escribe cada vez que
// un manager/admin ejecuta una acción sobre un producto o sus lotes.
type ProductLog struct {
	ID         int64
	ProductID  int64
	UserID     int64
	ActionType string
	LogTime    time.Time
	Notes      string
}
