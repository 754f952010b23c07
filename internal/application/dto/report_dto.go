package dto

import "github.com/shopspring/decimal"

// IDs de los siete reportes del sistema.
const (
	ReportSalesPerformance     = 1
	ReportCategoryDistribution = 2
	ReportRetailerPerformance  = 3
	ReportAlerts               = 4
	ReportManagerialActivity   = 5
	ReportDetailedTransactions = 6
	ReportUserAccounts         = 7
)

// DateRangeDTO rango de fechas de un reporte (YYYY-MM-DD).
type DateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ── Reporte 1 y 6: ventas ─────────────────────────────────────────────────────

// SaleRowDTO una línea vendida dentro del rango.
type SaleRowDTO struct {
	SaleID       int64           `json:"sale_id"`
	Date         string          `json:"date"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	RetailerName string          `json:"retailer_name"`
}

// SalesSummaryDTO totales del reporte de ventas. TotalIncome es exactamente la
// suma de TotalPrice de las filas devueltas (redondeada a 2 decimales solo
// para presentación).
type SalesSummaryDTO struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	TotalTransactions int             `json:"total_transactions"`
	SkippedRows       int             `json:"skipped_rows,omitempty"`
}

// SalesReportDTO reporte de desempeño de ventas (reporte 1) o de
// transacciones detalladas (reporte 6: mismo cálculo, otro nombre).
type SalesReportDTO struct {
	ReportID   int             `json:"report_id"`
	ReportName string          `json:"report_name"`
	DateRange  DateRangeDTO    `json:"date_range"`
	Sales      []SaleRowDTO    `json:"sales"`
	Summary    SalesSummaryDTO `json:"summary"`
}

// ── Reporte 2: distribución por categoría ─────────────────────────────────────

// CategoryRowDTO participación de una categoría en el stock total.
type CategoryRowDTO struct {
	CategoryID         int64           `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	NumberOfProducts   int             `json:"number_of_products"`
	TotalStockQuantity int             `json:"total_stock_quantity"`
	PercentageShare    decimal.Decimal `json:"percentage_share"` // 0 cuando el stock total es 0
}

// CategoryReportDTO reporte 2.
type CategoryReportDTO struct {
	ReportID   int              `json:"report_id"`
	ReportName string           `json:"report_name"`
	Categories []CategoryRowDTO `json:"categories"`
	Summary    struct {
		TotalCategories int `json:"total_categories"`
		TotalStock      int `json:"total_stock"`
	} `json:"summary"`
}

// ── Reporte 3: desempeño de retailers ─────────────────────────────────────────

// RetailerRowDTO desempeño de una cuenta vendedora (retailer o staff) con
// métricas registradas.
type RetailerRowDTO struct {
	RetailerName  string          `json:"retailer_name"`
	UserID        int64           `json:"user_id"`
	DailyQuota    int             `json:"daily_quota"`
	CurrentSales  int             `json:"current_sales"`
	QuotaProgress decimal.Decimal `json:"quota_progress"` // 0 cuando la cuota es 0
	StreakCount   int             `json:"streak_count"`
	TotalSales    int             `json:"total_sales"`
	HasProfilePic bool            `json:"has_profile_pic"`
}

// RetailerReportDTO reporte 3; filas ordenadas descendente por (racha, ventas
// totales): la racha domina, las ventas desempatan.
type RetailerReportDTO struct {
	ReportID   int              `json:"report_id"`
	ReportName string           `json:"report_name"`
	Retailers  []RetailerRowDTO `json:"retailers"`
	Summary    struct {
		TotalRetailers int `json:"total_retailers"` // todas las cuentas retailer/staff, con o sin métricas
		ActiveToday    int `json:"active_today"`
	} `json:"summary"`
}

// ── Reporte 4: alertas ────────────────────────────────────────────────────────

// AlertRowDTO un producto con problemas de stock o expiración. Productos sin
// problemas no producen fila.
type AlertRowDTO struct {
	ProductID      int64    `json:"product_id"`
	ProductName    string   `json:"product_name"`
	CurrentStock   int      `json:"current_stock"`
	MinStockLevel  int      `json:"min_stock_level"`
	ExpirationDate string   `json:"expiration_date,omitempty"` // expiración más próxima
	AlertStatus    []string `json:"alert_status"`
	Severity       string   `json:"severity"` // CRITICAL o WARNING
}

// AlertReportDTO reporte 4 (también la salida de GetAlerts).
type AlertReportDTO struct {
	ReportID   int           `json:"report_id"`
	ReportName string        `json:"report_name"`
	Alerts     []AlertRowDTO `json:"alerts"`
	Summary    struct {
		TotalAlerts    int `json:"total_alerts"`
		CriticalAlerts int `json:"critical_alerts"`
		WarningAlerts  int `json:"warning_alerts"`
	} `json:"summary"`
}

// ── Reporte 5: actividad gerencial ────────────────────────────────────────────

// ActivityRowDTO una acción de manager/admin sobre un producto.
type ActivityRowDTO struct {
	LogID           int64  `json:"log_id"`
	ProductName     string `json:"product_name"`
	ActionPerformed string `json:"action_performed"`
	ManagerID       int64  `json:"manager_id"`
	ManagerName     string `json:"manager_name"`
	DateTime        string `json:"date_time"`
	Notes           string `json:"notes"`
}

// ActivityReportDTO reporte 5; entradas más recientes primero.
type ActivityReportDTO struct {
	ReportID   int              `json:"report_id"`
	ReportName string           `json:"report_name"`
	DateRange  DateRangeDTO     `json:"date_range"`
	Logs       []ActivityRowDTO `json:"logs"`
	Summary    struct {
		TotalActions   int `json:"total_actions"`
		UniqueManagers int `json:"unique_managers"`
		SkippedRows    int `json:"skipped_rows,omitempty"`
	} `json:"summary"`
}

// ── Reporte 7: cuentas de usuario ─────────────────────────────────────────────

// UserRowDTO una cuenta del sistema.
type UserRowDTO struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	AccountStatus string `json:"account_status"`
	HasProfilePic bool   `json:"has_profile_pic"`
}

// UserReportDTO reporte 7; usuarios ordenados por nombre completo.
type UserReportDTO struct {
	ReportID   int          `json:"report_id"`
	ReportName string       `json:"report_name"`
	Users      []UserRowDTO `json:"users"`
	Summary    struct {
		TotalUsers int `json:"total_users"`
		Admins     int `json:"admins"`
		Managers   int `json:"managers"`
		Retailers  int `json:"retailers"` // retailer + staff
	} `json:"summary"`
}
