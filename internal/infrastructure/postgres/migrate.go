package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/craft-inventory-api/pkg/logger"
)

// MigrationsTable tabla donde golang-migrate guarda versión y estado dirty.
const MigrationsTable = "schema_migrations"

// Migrator aplica el esquema embebido (NNN_nombre.up.sql / .down.sql) sobre el pool de la aplicación.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator abre la fuente iofs sobre fsys y el driver pgx/v5 sobre un *sql.DB derivado del pool.
// Cerrar el Migrator no cierra el pool.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, log *logger.Logger) (*Migrator, error) {
	src, err := newSource(fsys)
	if err != nil {
		return nil, err
	}
	drv, err := pgxmigrate.WithInstance(stdlib.OpenDBFromPool(pool), &pgxmigrate.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("driver de migraciones: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", drv)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("iniciar migraciones: %w", err)
	}
	m.Log = migrateLogger{log: log}
	return &Migrator{m: m}, nil
}

func newSource(fsys fs.FS) (source.Driver, error) {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("fuente de migraciones: %w", err)
	}
	return src, nil
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (mg *Migrator) Up(ctx context.Context) error {
	return mg.run(ctx, mg.m.Up)
}

// Down revierte steps migraciones.
func (mg *Migrator) Down(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps debe ser positivo: %d", steps)
	}
	return mg.run(ctx, func() error { return mg.m.Steps(-steps) })
}

// Force fija la versión y limpia el estado dirty tras una migración interrumpida.
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// Version versión actual; 0 si la base no tiene migraciones aplicadas.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close libera la fuente y el driver.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// run ejecuta fn y pide una parada ordenada a golang-migrate si ctx se cancela.
func (mg *Migrator) run(ctx context.Context, fn func() error) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			select {
			case mg.m.GracefulStop <- true:
			default:
			}
		case <-done:
		}
	}()

	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	var dirty migrate.ErrDirty
	if errors.As(err, &dirty) {
		return fmt.Errorf("base en estado dirty en la versión %d; corregir y usar -force: %w", dirty.Version, err)
	}
	return err
}

// migrateLogger adapta el logger de la aplicación a migrate.Logger.
type migrateLogger struct {
	log *logger.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Str("component", "migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool { return false }
