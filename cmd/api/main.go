package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/craft-inventory-api/internal/application/auth"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/craft-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/craft-inventory-api/pkg/config"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
	"github.com/jhoicas/craft-inventory-api/pkg/tracing"
)

// storage agrupa los puertos de persistencia del backend elegido (APP_STORAGE).
type storage struct {
	tx        inventory.TxRunner
	materials repository.MaterialRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	boms      repository.BillOfMaterialRepository
	orders    repository.ProductionOrderRepository
	logs      repository.InventoryLogRepository
	audit     repository.ProductionAuditLogRepository
	users     repository.UserRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		s := memory.NewStore()
		return &storage{
			tx:        s,
			materials: s.Materials(),
			products:  s.Products(),
			locations: s.Locations(),
			boms:      s.BOMs(),
			orders:    s.ProductionOrders(),
			logs:      s.InventoryLogs(),
			audit:     s.AuditLogs(),
			users:     s.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		materials: postgres.NewMaterialRepository(pool),
		products:  postgres.NewProductRepository(pool),
		locations: postgres.NewLocationRepository(pool),
		boms:      postgres.NewBOMRepository(pool),
		orders:    postgres.NewProductionOrderRepository(pool),
		logs:      postgres.NewInventoryLogRepository(pool),
		audit:     postgres.NewAuditLogRepository(pool),
		users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	// Cantidades como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true

	tp, err := tracing.Init(cfg.App.Name, cfg.Tracing.JaegerEndpoint, cfg.Tracing.Enabled)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer st.close()

	userUC := usecase.NewUserUseCase(st.users)
	if cfg.App.Storage == config.StorageMemory && cfg.Admin.Password != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Str("username", cfg.Admin.Username).Bool("created", created).Msg("administrador inicial")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name, log, m)

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó el archivo)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Craft Inventory API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		MaterialUC:   usecase.NewMaterialUseCase(st.materials),
		ProductUC:    usecase.NewProductUseCase(st.products),
		LocationUC:   usecase.NewLocationUseCase(st.locations),
		BOMUC:        usecase.NewBOMUseCase(st.boms),
		OrderUC:      usecase.NewProductionOrderUseCase(st.tx, st.orders, st.audit),
		LogUC:        usecase.NewInventoryLogUseCase(st.logs),
		Deduction:    inventory.NewDeductionUseCase(st.tx, m, log),
		Restock:      inventory.NewRestockUseCase(st.tx, m, log),
		Calculate:    inventory.NewCalculateUseCase(st.boms, st.materials),
		JWTSecret:    cfg.JWT.Secret,
		MetricsRoute: adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		log.Error().Err(err).Msg("cerrar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
