// Package reports implementa los siete reportes de solo lectura del sistema.
// Ningún reporte modifica datos; todos operan sobre el estado visible al
// momento de la llamada (consistencia de snapshot) y redondean porcentajes y
// montos a 2 decimales únicamente al construir el DTO.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stockadoodle/inventory-core/internal/application/alerts"
	"github.com/stockadoodle/inventory-core/internal/application/dto"
	"github.com/stockadoodle/inventory-core/internal/domain"
	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/domain/repository"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

// defaultRangeDays rango por defecto de los reportes con fechas: los últimos
// 30 días terminando hoy.
const defaultRangeDays = 30

// Clock entrega la fecha "hoy" para los rangos por defecto.
type Clock func() time.Time

// UseCase genera los reportes.
type UseCase struct {
	repo     repository.ReportRepository
	alerts   *alerts.UseCase
	today    Clock
	log      *logger.Logger
	collator *collate.Collator
}

// NewUseCase construye el generador de reportes.
func NewUseCase(repo repository.ReportRepository, alertScanner *alerts.UseCase, today Clock, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:     repo,
		alerts:   alertScanner,
		today:    today,
		log:      log,
		collator: collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// Generate despacha por ID de reporte (1..7). start/end aplican solo a los
// reportes con rango de fechas (1, 5, 6); nil usa los últimos 30 días.
func (uc *UseCase) Generate(ctx context.Context, reportID int, start, end *time.Time) (any, error) {
	switch reportID {
	case dto.ReportSalesPerformance:
		return uc.SalesPerformance(ctx, start, end)
	case dto.ReportCategoryDistribution:
		return uc.CategoryDistribution(ctx)
	case dto.ReportRetailerPerformance:
		return uc.RetailerPerformance(ctx)
	case dto.ReportAlerts:
		return uc.alerts.GetAlerts(ctx, alerts.DefaultHorizonDays)
	case dto.ReportManagerialActivity:
		return uc.ManagerialActivity(ctx, start, end)
	case dto.ReportDetailedTransactions:
		return uc.DetailedTransactions(ctx, start, end)
	case dto.ReportUserAccounts:
		return uc.UserAccounts(ctx)
	default:
		return nil, domain.ErrUnknownReport
	}
}

// dateRange resuelve el rango pedido; por defecto los últimos 30 días.
func (uc *UseCase) dateRange(start, end *time.Time) (time.Time, time.Time) {
	to := uc.today()
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -defaultRangeDays)
	if start != nil {
		from = *start
	}
	return from, to
}

// SalesPerformance reporte 1: ventas del rango con join a productos y
// retailers. El total del resumen es exactamente la suma de los totales de
// línea de las filas devueltas.
func (uc *UseCase) SalesPerformance(ctx context.Context, start, end *time.Time) (*dto.SalesReportDTO, error) {
	return uc.salesReport(ctx, dto.ReportSalesPerformance, "Sales Performance Report", start, end)
}

// DetailedTransactions reporte 6: el mismo cálculo que el reporte 1 bajo otro
// nombre de cara al usuario.
func (uc *UseCase) DetailedTransactions(ctx context.Context, start, end *time.Time) (*dto.SalesReportDTO, error) {
	return uc.salesReport(ctx, dto.ReportDetailedTransactions, "Detailed Sales Transaction Report", start, end)
}

func (uc *UseCase) salesReport(ctx context.Context, reportID int, name string, start, end *time.Time) (*dto.SalesReportDTO, error) {
	from, to := uc.dateRange(start, end)
	rows, skipped, err := uc.repo.SalesRows(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		uc.log.Warn().Int("skipped", skipped).Int("report_id", reportID).Msg("filas omitidas por joins rotos")
	}
	// Ventas más recientes primero; las líneas de una misma venta conservan
	// su orden relativo.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SoldAt.After(rows[j].SoldAt)
	})

	report := &dto.SalesReportDTO{
		ReportID:   reportID,
		ReportName: name,
		DateRange:  dto.DateRangeDTO{Start: from.Format("2006-01-02"), End: to.Format("2006-01-02")},
	}
	totalIncome := decimal.Zero
	seen := make(map[int64]struct{})
	for _, r := range rows {
		report.Sales = append(report.Sales, dto.SaleRowDTO{
			SaleID:       r.SaleID,
			Date:         r.SoldAt.Format(time.RFC3339),
			ProductName:  r.ProductName,
			QuantitySold: r.Quantity,
			TotalPrice:   r.LineTotal,
			RetailerName: r.RetailerName,
		})
		totalIncome = totalIncome.Add(r.LineTotal)
		report.Summary.TotalQuantitySold += r.Quantity
		seen[r.SaleID] = struct{}{}
	}
	report.Summary.TotalIncome = totalIncome.Round(2)
	report.Summary.TotalTransactions = len(seen)
	report.Summary.SkippedRows = skipped
	return report, nil
}

// CategoryDistribution reporte 2: participación de cada categoría en el stock
// total. Con stock total cero todos los porcentajes son cero (nunca división
// por cero).
func (uc *UseCase) CategoryDistribution(ctx context.Context) (*dto.CategoryReportDTO, error) {
	rows, err := uc.repo.CategoryStock(ctx)
	if err != nil {
		return nil, err
	}

	totalStock := 0
	for _, r := range rows {
		totalStock += r.TotalStock
	}

	report := &dto.CategoryReportDTO{
		ReportID:   dto.ReportCategoryDistribution,
		ReportName: "Category Distribution Report",
	}
	for _, r := range rows {
		share := decimal.Zero
		if totalStock > 0 {
			share = decimal.NewFromInt(int64(r.TotalStock)).
				Div(decimal.NewFromInt(int64(totalStock))).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
		report.Categories = append(report.Categories, dto.CategoryRowDTO{
			CategoryID:         r.CategoryID,
			CategoryName:       r.CategoryName,
			NumberOfProducts:   r.ProductCount,
			TotalStockQuantity: r.TotalStock,
			PercentageShare:    share,
		})
	}
	report.Summary.TotalCategories = len(rows)
	report.Summary.TotalStock = totalStock
	return report, nil
}

// RetailerPerformance reporte 3: un row por cuenta vendedora (retailer o
// staff) con métricas registradas; orden descendente por la clave compuesta
// (racha, ventas totales). El total del resumen cuenta TODAS las cuentas
// vendedoras, tengan o no métricas.
func (uc *UseCase) RetailerPerformance(ctx context.Context) (*dto.RetailerReportDTO, error) {
	rows, err := uc.repo.RetailerRows(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.RetailerReportDTO{
		ReportID:   dto.ReportRetailerPerformance,
		ReportName: "Retailer Performance Report",
	}
	for _, r := range rows {
		progress := decimal.Zero
		if r.DailyQuota > 0 {
			progress = decimal.NewFromInt(int64(r.SalesToday)).
				Div(decimal.NewFromInt(int64(r.DailyQuota))).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
		report.Retailers = append(report.Retailers, dto.RetailerRowDTO{
			RetailerName:  r.RetailerName,
			UserID:        r.RetailerID,
			DailyQuota:    r.DailyQuota,
			CurrentSales:  r.SalesToday,
			QuotaProgress: progress,
			StreakCount:   r.CurrentStreak,
			TotalSales:    r.TotalSales,
			HasProfilePic: r.HasProfilePic,
		})
		if r.SalesToday > 0 {
			report.Summary.ActiveToday++
		}
	}
	sort.SliceStable(report.Retailers, func(i, j int) bool {
		a, b := report.Retailers[i], report.Retailers[j]
		if a.StreakCount != b.StreakCount {
			return a.StreakCount > b.StreakCount
		}
		return a.TotalSales > b.TotalSales
	})
	for _, u := range users {
		if u.Role == entity.RoleRetailer || u.Role == entity.RoleStaff {
			report.Summary.TotalRetailers++
		}
	}
	return report, nil
}

// ManagerialActivity reporte 5: acciones de managers/admins dentro del rango,
// más recientes primero.
func (uc *UseCase) ManagerialActivity(ctx context.Context, start, end *time.Time) (*dto.ActivityReportDTO, error) {
	from, to := uc.dateRange(start, end)
	rows, skipped, err := uc.repo.ManagerialLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		uc.log.Warn().Int("skipped", skipped).Int("report_id", dto.ReportManagerialActivity).Msg("filas omitidas por joins rotos")
	}

	report := &dto.ActivityReportDTO{
		ReportID:   dto.ReportManagerialActivity,
		ReportName: "Managerial Activity Log Report",
		DateRange:  dto.DateRangeDTO{Start: from.Format("2006-01-02"), End: to.Format("2006-01-02")},
	}
	// Ordenar sobre time.Time, no sobre el string formateado: timestamps con
	// offsets distintos no ordenan bien lexicográficamente.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LogTime.After(rows[j].LogTime)
	})

	managers := make(map[int64]struct{})
	for _, r := range rows {
		report.Logs = append(report.Logs, dto.ActivityRowDTO{
			LogID:           r.LogID,
			ProductName:     r.ProductName,
			ActionPerformed: r.ActionType,
			ManagerID:       r.ManagerID,
			ManagerName:     r.ManagerName,
			DateTime:        r.LogTime.Format(time.RFC3339),
			Notes:           r.Notes,
		})
		managers[r.ManagerID] = struct{}{}
	}
	report.Summary.TotalActions = len(report.Logs)
	report.Summary.UniqueManagers = len(managers)
	report.Summary.SkippedRows = skipped
	return report, nil
}

// UserAccounts reporte 7: todas las cuentas ordenadas por nombre (colación
// española, insensible a mayúsculas), con el resumen por rol.
func (uc *UseCase) UserAccounts(ctx context.Context) (*dto.UserReportDTO, error) {
	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return uc.collator.CompareString(users[i].FullName, users[j].FullName) < 0
	})

	report := &dto.UserReportDTO{
		ReportID:   dto.ReportUserAccounts,
		ReportName: "User Accounts Report",
	}
	for _, u := range users {
		status := u.Status
		if status == "" {
			status = "active"
		}
		report.Users = append(report.Users, dto.UserRowDTO{
			UserID:        u.ID,
			Username:      u.Username,
			FullName:      u.FullName,
			Role:          u.Role,
			AccountStatus: status,
			HasProfilePic: u.HasProfilePic,
		})
		switch u.Role {
		case entity.RoleAdmin:
			report.Summary.Admins++
		case entity.RoleManager:
			report.Summary.Managers++
		case entity.RoleRetailer, entity.RoleStaff:
			report.Summary.Retailers++
		}
	}
	report.Summary.TotalUsers = len(users)
	return report, nil
}
