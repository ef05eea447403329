package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/landed-cost-api/internal/application/auth"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Receipts    ReceiptService
	Products    ProductCatalog
	Warehouses  WarehouseCatalog
	Users       UserAdmin
	LandedCosts LandedCostService
	JWTSecret   string
	AppName     string
	Log         *logger.Logger // nil: sin log de peticiones

	// HealthChecks dependencias a verificar en /health (postgres, redis); nombre → chequeo
	HealthChecks map[string]func(context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log.Component("http")))
	}
	app.Get("/health", healthHandler(deps.AppName, deps.HealthChecks))
	// documento OpenAPI registrado por el paquete docs
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"code": "NOT_FOUND", "message": err.Error()})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Group("/auth").Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	staff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios de la empresa
	userHandler := NewUserHandler(deps.Users)
	users := protected.Group("/users", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id/status", userHandler.SetStatus)

	// Catálogo: alta solo admin, consulta para todo el personal
	productHandler := NewProductHandler(deps.Products)
	products := protected.Group("/products", staff)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	warehouseHandler := NewWarehouseHandler(deps.Warehouses)
	warehouses := protected.Group("/warehouses", staff)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Recepciones de inventario
	inventoryHandler := NewInventoryHandler(deps.Receipts)
	receipts := protected.Group("/inventory/receipts", staff)
	receipts.Post("/", inventoryHandler.RegisterReceipt)
	receipts.Get("/:id", inventoryHandler.GetReceipt)

	// Costos en destino
	lc := protected.Group("/landed-costs", staff)
	lcHandler := NewLandedCostHandler(deps.LandedCosts)
	lc.Post("/", lcHandler.Create)
	lc.Get("/", lcHandler.List)
	lc.Get("/:id", lcHandler.Get)
	lc.Delete("/:id", adminOnly, lcHandler.Delete)
	lc.Post("/:id/individual-lines", lcHandler.AddIndividualLine)
	lc.Delete("/:id/individual-lines/:lineId", lcHandler.RemoveIndividualLine)
	lc.Post("/:id/compute", lcHandler.Compute)
	lc.Get("/:id/check", lcHandler.Check)
	lc.Post("/:id/validate", adminOnly, lcHandler.Validate)
	lc.Get("/:id/report", lcHandler.Report)
}

// healthHandler responde 503 si alguna dependencia falla; cada chequeo tiene 2s.
func healthHandler(appName string, checks map[string]func(context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			err := check(ctx)
			cancel()
			if err != nil {
				status = fiber.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "service": appName, "checks": results})
	}
}
