package entity

// RetailerMetrics son los contadores diarios por retailer. Los escribe el
// subsistema de ventas; el core de inventario solo los lee (reporte 3).
type RetailerMetrics struct {
	RetailerID    int64
	DailyQuota    int
	SalesToday    int
	CurrentStreak int
	TotalSales    int
}
