// alertd escanea el inventario periódicamente y entrega las alertas de bajo
// stock y expiración al sink de notificación configurado.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockadoodle/inventory-core/internal/application/alerts"
	"github.com/stockadoodle/inventory-core/internal/infrastructure/notify"
	"github.com/stockadoodle/inventory-core/internal/infrastructure/postgres"
	"github.com/stockadoodle/inventory-core/pkg/config"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Dur("scan_interval", cfg.Alerts.ScanInterval).
		Int("horizon_days", cfg.Alerts.HorizonDays).
		Msg("iniciando escáner de alertas")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	notifier := notify.NewLogNotifier(log)
	alertsUC := alerts.NewUseCase(productRepo, batchRepo, notifier, time.Now, log)

	interval := cfg.Alerts.ScanInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	scan := func() {
		if err := alertsUC.NotifyAlerts(ctx, cfg.Alerts.HorizonDays); err != nil {
			log.Error().Err(err).Msg("escaneo de alertas falló")
		}
	}
	scan()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			scan()
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("apagando escáner de alertas")
			return
		}
	}
}
