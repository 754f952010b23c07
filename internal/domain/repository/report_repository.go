package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
)

// SalesRowResult fila cruda de la consulta de ventas (join sale→item→product→user).
// La produce la DB; el use case la convierte en DTO.
type SalesRowResult struct {
	SaleID       int64
	SoldAt       time.Time
	ProductName  string
	Quantity     int
	LineTotal    decimal.Decimal
	RetailerName string
}

// CategoryStockResult fila cruda de distribución por categoría.
type CategoryStockResult struct {
	CategoryID   int64
	CategoryName string
	ProductCount int
	TotalStock   int // suma de Quantity de los lotes de sus productos
}

// RetailerRowResult fila cruda del reporte de desempeño de vendedores
// (roles retailer y staff). Solo cuentas con registro de métricas producen fila.
type RetailerRowResult struct {
	RetailerID    int64
	RetailerName  string
	DailyQuota    int
	SalesToday    int
	CurrentStreak int
	TotalSales    int
	HasProfilePic bool
}

// ManagerialLogResult fila cruda del log de actividad gerencial
// (entradas de ProductLog cuyo actor tiene rol admin o manager).
type ManagerialLogResult struct {
	LogID       int64
	ProductName string
	ActionType  string
	ManagerID   int64
	ManagerName string
	LogTime     time.Time
	Notes       string
}

// ReportRepository define las consultas de solo lectura que alimentan los
// reportes. Las implementaciones no modifican datos y toleran consistencia de
// snapshot: operan sobre el estado visible al momento de la llamada.
//
// Filas con joins rotos (producto o usuario ya no existe) se omiten en vez de
// fallar el reporte completo; skipped devuelve cuántas se omitieron.
type ReportRepository interface {
	SalesRows(ctx context.Context, from, to time.Time) (rows []SalesRowResult, skipped int, err error)
	CategoryStock(ctx context.Context) ([]CategoryStockResult, error)
	RetailerRows(ctx context.Context) ([]RetailerRowResult, error)
	ManagerialLogs(ctx context.Context, from, to time.Time) (rows []ManagerialLogResult, skipped int, err error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
