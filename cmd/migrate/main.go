// migrate aplica el esquema SQL embebido sobre la base configurada y, opcionalmente,
// crea el usuario administrador inicial (ADMIN_USERNAME / ADMIN_PASSWORD).
//
// Uso: go run ./cmd/migrate [-down N | -force V] [-seed-admin]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/craft-inventory-api/pkg/config"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
)

func main() {
	seedAdmin := flag.Bool("seed-admin", false, "crear el administrador inicial si no existe")
	down := flag.Int("down", 0, "revertir N migraciones en lugar de aplicar las pendientes")
	force := flag.Int("force", -1, "fijar la versión indicada y limpiar el estado dirty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a PostgreSQL")
	}
	defer pool.Close()

	migrator, err := postgres.NewMigrator(pool, migrations.FS, log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer migrator.Close()

	switch {
	case *force >= 0:
		err = migrator.Force(*force)
	case *down > 0:
		err = migrator.Down(ctx, *down)
	default:
		err = migrator.Up(ctx)
	}
	version, dirty, verr := migrator.Version()
	if err != nil {
		log.Fatal().Err(err).Uint("version", version).Bool("dirty", dirty).Msg("migración fallida")
	}
	if verr != nil {
		log.Fatal().Err(verr).Msg("leer versión del esquema")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("esquema al día")

	if !*seedAdmin {
		return
	}
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		log.Fatal().Msg("-seed-admin requiere ADMIN_USERNAME y ADMIN_PASSWORD")
	}
	created, err := usecase.NewUserUseCase(postgres.NewUserRepository(pool)).EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("username", cfg.Admin.Username).Bool("created", created).Msg("administrador inicial")
}
