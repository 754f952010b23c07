package postgres

import (
	"context"
	"time"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de solo lectura del puerto ReportRepository.
// Todas las consultas son joins sin locks: los reportes operan sobre el
// snapshot visible, no serializan contra el ledger.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de consultas de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesRows devuelve las líneas de venta del rango [from, to] con producto y
// retailer resueltos, las ventas más recientes primero. Las líneas cuyo
// producto o retailer ya no existe se cuentan como skipped en lugar de abortar
// el reporte.
func (r *ReportRepo) SalesRows(ctx context.Context, from, to time.Time) ([]repository.SalesRowResult, int, error) {
	query := `
		SELECT s.id, s.created_at, p.name, si.quantity, si.line_total, u.full_name
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		LEFT JOIN products p ON p.id = si.product_id
		LEFT JOIN users u ON u.id = s.retailer_id
		WHERE s.created_at >= $1 AND s.created_at <= $2
		ORDER BY s.created_at DESC, si.id ASC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, 0, wrapStoreErr("query sales rows", err)
	}
	defer rows.Close()

	var (
		out     []repository.SalesRowResult
		skipped int
	)
	for rows.Next() {
		var (
			row          repository.SalesRowResult
			productName  *string
			retailerName *string
		)
		if err := rows.Scan(&row.SaleID, &row.SoldAt, &productName, &row.Quantity, &row.LineTotal, &retailerName); err != nil {
			return nil, 0, wrapStoreErr("scan sales row", err)
		}
		if productName == nil || retailerName == nil {
			skipped++
			continue
		}
		row.ProductName = *productName
		row.RetailerName = *retailerName
		out = append(out, row)
	}
	return out, skipped, rows.Err()
}

// CategoryStock agrega productos y stock de lotes por categoría. Categorías
// sin productos producen fila con ceros.
func (r *ReportRepo) CategoryStock(ctx context.Context) ([]repository.CategoryStockResult, error) {
	query := `
		SELECT c.id, c.name,
		       COUNT(DISTINCT p.id),
		       COALESCE(SUM(sb.quantity), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN stock_batches sb ON sb.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY c.id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("query category stock", err)
	}
	defer rows.Close()

	var out []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.ProductCount, &row.TotalStock); err != nil {
			return nil, wrapStoreErr("scan category stock", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RetailerRows devuelve métricas de venta por cuenta vendedora (roles
// retailer y staff). Solo cuentas con registro en retailer_metrics producen
// fila; el orden final lo decide el use case.
func (r *ReportRepo) RetailerRows(ctx context.Context) ([]repository.RetailerRowResult, error) {
	query := `
		SELECT u.id, u.full_name, rm.daily_quota, rm.sales_today,
		       rm.current_streak, rm.total_sales, u.has_profile_pic
		FROM retailer_metrics rm
		JOIN users u ON u.id = rm.retailer_id
		WHERE u.role = $1 OR u.role = $2
		ORDER BY u.id ASC`
	rows, err := r.q.Query(ctx, query, entity.RoleRetailer, entity.RoleStaff)
	if err != nil {
		return nil, wrapStoreErr("query retailer rows", err)
	}
	defer rows.Close()

	var out []repository.RetailerRowResult
	for rows.Next() {
		var row repository.RetailerRowResult
		if err := rows.Scan(&row.RetailerID, &row.RetailerName, &row.DailyQuota, &row.SalesToday,
			&row.CurrentStreak, &row.TotalSales, &row.HasProfilePic); err != nil {
			return nil, wrapStoreErr("scan retailer row", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ManagerialLogs devuelve las entradas del log cuyo actor tiene rol admin o
// manager, dentro del rango [from, to]. Entradas con producto o actor ya
// inexistente se cuentan como skipped.
func (r *ReportRepo) ManagerialLogs(ctx context.Context, from, to time.Time) ([]repository.ManagerialLogResult, int, error) {
	query := `
		SELECT pl.id, p.name, pl.action_type, pl.user_id, u.full_name, pl.log_time, pl.notes
		FROM product_logs pl
		LEFT JOIN products p ON p.id = pl.product_id
		LEFT JOIN users u ON u.id = pl.user_id
		WHERE pl.log_time >= $1 AND pl.log_time <= $2
		  AND (u.role IS NULL OR u.role = $3 OR u.role = $4)
		ORDER BY pl.log_time DESC, pl.id DESC`
	rows, err := r.q.Query(ctx, query, from, to, entity.RoleAdmin, entity.RoleManager)
	if err != nil {
		return nil, 0, wrapStoreErr("query managerial logs", err)
	}
	defer rows.Close()

	var (
		out     []repository.ManagerialLogResult
		skipped int
	)
	for rows.Next() {
		var (
			row         repository.ManagerialLogResult
			productName *string
			managerName *string
		)
		if err := rows.Scan(&row.LogID, &productName, &row.ActionType, &row.ManagerID, &managerName, &row.LogTime, &row.Notes); err != nil {
			return nil, 0, wrapStoreErr("scan managerial log", err)
		}
		if productName == nil || managerName == nil {
			skipped++
			continue
		}
		row.ProductName = *productName
		row.ManagerName = *managerName
		out = append(out, row)
	}
	return out, skipped, rows.Err()
}

// ListUsers devuelve todas las cuentas. El orden alfabético (collation) lo
// aplica el use case, no la DB.
func (r *ReportRepo) ListUsers(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT id, username, full_name, email, role, status, has_profile_pic, created_at
		FROM users
		ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("query users", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role, &u.Status, &u.HasProfilePic, &u.CreatedAt); err != nil {
			return nil, wrapStoreErr("scan user", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
