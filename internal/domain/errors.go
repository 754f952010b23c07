package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: ErrStorageUnavailable es transitorio (reintentable con backoff);
// los errores de regla de negocio (cantidad, lote no vacío, etc.) no se
// reintentan y se devuelven al caller con la regla específica violada;
// ErrConsistencyViolation indica un bug interno (nunca error del usuario)
// y la operación que lo detecta no debe dejar escrituras parciales.
var (
	ErrStorageUnavailable   = errors.New("almacenamiento no disponible")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrBatchNotFound        = errors.New("lote de stock no encontrado")
	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente en el lote")
	ErrBatchNotEmpty        = errors.New("el lote aún tiene unidades; disponer antes de eliminar")
	ErrProductHasStock      = errors.New("el producto aún tiene stock; disponer todos los lotes antes de eliminar")
	ErrConsistencyViolation = errors.New("stock_level no coincide con la suma de los lotes")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnknownReport        = errors.New("reporte desconocido")
)
