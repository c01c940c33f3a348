package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	CategoryUC        *usecase.CategoryUseCase
	SupplierUC        *usecase.SupplierUseCase
	UserUC            *usecase.UserUseCase
	TransactionUC     *usecase.TransactionUseCase
	RecordTransaction *inventory.RecordTransactionUseCase
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// low-stock antes de /:id para que Fiber no lo capture como ID
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Transactions (protegido; registro vía motor de transacciones)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.RecordTransaction, deps.TransactionUC)
	transactions.Post("/", transactionHandler.Record)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/product/:product_id", transactionHandler.ListByProduct)
	transactions.Get("/:id", transactionHandler.GetByID)

	// Users (protegido; list/update/delete solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", RequireRole(entity.RoleAdmin), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)
}
