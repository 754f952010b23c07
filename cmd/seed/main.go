// seed inicializa la base: aplica el esquema, crea los contadores con sus
// valores iniciales y deja una cuenta admin lista en el rango reservado de IDs.
//
// Uso: go run ./cmd/seed [ruta/al/esquema.sql]
// Por defecto aplica migrations/001_init.sql desde el directorio actual.
// Idempotente: reaplicarlo sobre una base ya inicializada no cambia nada.
package main

import (
	"context"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockadoodle/inventory-core/internal/domain/entity"
	"github.com/stockadoodle/inventory-core/internal/infrastructure/postgres"
	"github.com/stockadoodle/inventory-core/pkg/config"
	"github.com/stockadoodle/inventory-core/pkg/logger"
)

func main() {
	schemaPath := "migrations/001_init.sql"
	if len(os.Args) > 1 {
		schemaPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("schema", schemaPath).Msg("inicializando base de datos")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", schemaPath).Msg("leer esquema")
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	// Contadores: nacen con su valor inicial; si ya existen no se tocan
	// (reiniciarlos rompería la garantía de IDs sin repetición).
	counterNames := []string{
		entity.CounterUser,
		entity.CounterProduct,
		entity.CounterCategory,
		entity.CounterSale,
		entity.CounterSaleItem,
		entity.CounterStockBatch,
		entity.CounterProductLog,
		entity.CounterRetailerMetrics,
	}
	for _, name := range counterNames {
		_, err := pool.Exec(ctx,
			`INSERT INTO counters (name, seq) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			name, entity.CounterInitialValue(name),
		)
		if err != nil {
			log.Fatal().Err(err).Str("counter", name).Msg("sembrar contador")
		}
	}
	log.Info().Int("counters", len(counterNames)).Msg("contadores sembrados")

	// Cuenta admin en el rango reservado (IDs < 1000 quedan fuera del
	// contador user_id, que arranca en 1000).
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Warn().Msg("ADMIN_PASSWORD no definido, usando contraseña por defecto")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña admin")
	}
	cmd, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, full_name, email, role, password_hash, status)
		VALUES (1, 'admin', 'Administrador', '', $1, $2, 'active')
		ON CONFLICT (id) DO NOTHING`,
		entity.RoleAdmin, string(hash),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta admin")
	}
	if cmd.RowsAffected() > 0 {
		log.Info().Msg("cuenta admin creada")
	} else {
		log.Info().Msg("cuenta admin ya existía")
	}

	log.Info().Msg("base inicializada")
}
