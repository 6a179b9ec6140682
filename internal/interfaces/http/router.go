package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pasteleria-pos/internal/application/auth"
	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/internal/application/usecase"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *usecase.OrderUseCase
	StockUC   *stock.UseCase
	JWTSecret string
}

// Router registra las rutas de la API. Caja (Cashier o Manager) opera ventas
// y consultas; la gestión de stock, empleados y reportes es de Manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyStaff := RequireRole(entity.RoleManager, entity.RoleCashier)
	managerOnly := RequireRole(entity.RoleManager)

	// Password propia (cualquier empleado autenticado)
	protected.Put("/users/me/password", anyStaff, authHandler.ChangePassword)

	// Empleados (solo Manager)
	users := protected.Group("/users", managerOnly)
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/", userHandler.Register)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", userHandler.ChangeRole)
	users.Delete("/:id", userHandler.Deactivate)

	// Catálogo (lectura para caja, escritura de Manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyStaff, productHandler.List)
	products.Get("/:id", anyStaff, productHandler.GetByID)
	products.Post("/", managerOnly, productHandler.Create)
	products.Put("/:id", managerOnly, productHandler.Update)

	// Stock (gestión de Manager; los lotes por producto los ve también caja)
	stockHandler := NewStockHandler(deps.StockUC)
	products.Get("/:id/stocks", anyStaff, stockHandler.ListByProduct)
	products.Post("/:id/stocks/refresh", managerOnly, stockHandler.Refresh)

	stocks := protected.Group("/stocks", managerOnly)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/warnings", stockHandler.Warnings)
	stocks.Get("/transactions", stockHandler.Transactions)
	stocks.Get("/modifications", stockHandler.Modifications)
	stocks.Get("/summary", stockHandler.Summary)
	stocks.Put("/:id", stockHandler.Update)

	// Pedidos (caja)
	orders := protected.Group("/orders", anyStaff)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/payment", orderHandler.Payment)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Post("/:id/cancel", orderHandler.Cancel)
}
