package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/craft-inventory-api/internal/application/auth"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/application/usecase"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	BOMUC        *usecase.BOMUseCase
	OrderUC      *usecase.ProductionOrderUseCase
	LogUC        *usecase.InventoryLogUseCase
	Deduction    *inventory.DeductionUseCase
	Restock      *inventory.RestockUseCase
	Calculate    *inventory.CalculateUseCase
	JWTSecret    string
	MetricsRoute fiber.Handler // opcional: exposición Prometheus en /metrics
}

// NewApp crea la app Fiber con el ErrorHandler de dominio y los middlewares comunes.
// recover va después de Observe para que un panic llegue como error y se mida como 500.
func NewApp(name string, log *logger.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(requestid.New())
	app.Use(Observe(log, m))
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsRoute != nil {
		app.Get("/metrics", deps.MetricsRoute)
	}

	// Auth (público)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: token válido y usuario existente.
	authed := []fiber.Handler{AuthMiddleware(deps.JWTSecret), LoadUser(deps.AuthUC)}
	staff := append(authed[:len(authed):len(authed)], RequireRole(entity.RoleAdmin, entity.RoleOperator))
	adminOnly := RequireRole(entity.RoleAdmin)

	app.Get("/inventory", append(authed[:len(authed):len(authed)], Greeting)...)

	// Users (solo admin)
	users := app.Group("/users", append(authed[:len(authed):len(authed)], adminOnly)...)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)

	// Materials
	materials := app.Group("/materials", staff...)
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Restock)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Post("/restock", materialHandler.Restock)
	materials.Get("/low_stock", materialHandler.LowStock)

	// Products y locations
	products := app.Group("/products", staff...)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)

	locations := app.Group("/locations", staff...)
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)

	// BoM
	bom := app.Group("/bom", staff...)
	bomHandler := NewBOMHandler(deps.BOMUC, deps.Calculate, deps.Deduction)
	bom.Post("/", bomHandler.Create)
	bom.Get("/", bomHandler.List)
	bom.Get("/calculate", bomHandler.Calculate)
	bom.Post("/deduct", bomHandler.Deduct)

	// Production orders
	orders := app.Group("/production_orders", staff...)
	productionHandler := NewProductionHandler(deps.OrderUC, deps.Deduction)
	orders.Post("/", productionHandler.Create)
	orders.Get("/", productionHandler.List)
	orders.Get("/:id", productionHandler.Get)
	orders.Delete("/:id", adminOnly, productionHandler.Delete)
	orders.Put("/:id/status", productionHandler.UpdateStatus)
	orders.Post("/:id/deduct", productionHandler.Deduct)
	orders.Get("/:id/audit", productionHandler.Audit)

	// Inventory logs
	logs := app.Group("/logs", staff...)
	logHandler := NewLogHandler(deps.LogUC)
	logs.Get("/inventory", logHandler.List)
}
