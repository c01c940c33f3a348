// seed puebla la base de datos con datos de demostración: usuarios de cada
// rol, categorías, proveedores y productos con su transacción de stock
// inicial registrada por el motor de transacciones.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stocktrack-api/pkg/config"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name      string
	sku       string
	quantity  int
	price     string
	threshold int
	category  string
	supplier  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := inventory.NewRecordTransactionUseCase(txRunner)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, supplierRepo, engine)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Usuarios de demostración, uno por rol.
	users := []dto.RegisterRequest{
		{Username: "admin", Email: "admin@stocktrack.local", Password: "admin123", Role: "admin"},
		{Username: "staff", Email: "staff@stocktrack.local", Password: "staff123", Role: "staff"},
		{Username: "viewer", Email: "viewer@stocktrack.local", Password: "viewer123", Role: "viewer"},
	}
	adminID := ""
	for _, in := range users {
		u, err := authUC.Register(in)
		if err != nil {
			log.Fatal().Err(err).Str("username", in.Username).Msg("crear usuario")
		}
		if u.Role == "admin" {
			adminID = u.ID
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("usuario creado")
	}

	categories := []dto.CreateCategoryRequest{
		{Name: "Electronics", Description: "Electronic devices and accessories"},
		{Name: "Furniture", Description: "Office and home furniture"},
		{Name: "Stationery", Description: "Office supplies and stationery"},
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, in := range categories {
		cat, err := categoryUC.Create(in)
		if err != nil {
			log.Fatal().Err(err).Str("name", in.Name).Msg("crear categoría")
		}
		categoryIDs[cat.Name] = cat.ID
	}
	log.Info().Int("count", len(categoryIDs)).Msg("categorías creadas")

	suppliers := []dto.CreateSupplierRequest{
		{Name: "Tech Supplies Inc", ContactInfo: "123 Tech Street, Silicon Valley", Phone: "+1-555-0101", Email: "contact@techsupplies.com"},
		{Name: "Furniture World", ContactInfo: "456 Furniture Ave, New York", Phone: "+1-555-0202", Email: "sales@furnitureworld.com"},
		{Name: "Office Essentials", ContactInfo: "789 Office Blvd, Chicago", Phone: "+1-555-0303", Email: "info@officeessentials.com"},
	}
	supplierIDs := make(map[string]string, len(suppliers))
	for _, in := range suppliers {
		sup, err := supplierUC.Create(in)
		if err != nil {
			log.Fatal().Err(err).Str("name", in.Name).Msg("crear proveedor")
		}
		supplierIDs[sup.Name] = sup.ID
	}
	log.Info().Int("count", len(supplierIDs)).Msg("proveedores creados")

	products := []seedProduct{
		{"Laptop", "ELEC-001", 50, "999.99", 10, "Electronics", "Tech Supplies Inc"},
		{"Wireless Mouse", "ELEC-002", 150, "29.99", 20, "Electronics", "Tech Supplies Inc"},
		{"USB-C Cable", "ELEC-003", 8, "15.99", 15, "Electronics", "Tech Supplies Inc"},
		{"Office Desk", "FURN-001", 25, "299.99", 5, "Furniture", "Furniture World"},
		{"Ergonomic Chair", "FURN-002", 30, "199.99", 8, "Furniture", "Furniture World"},
		{"Notebook", "STAT-001", 200, "4.99", 50, "Stationery", "Office Essentials"},
		{"Pen Set", "STAT-002", 5, "12.99", 30, "Stationery", "Office Essentials"},
	}
	var cableID string
	for _, sp := range products {
		threshold := sp.threshold
		out, err := productUC.Create(ctx, adminID, dto.CreateProductRequest{
			Name:              sp.name,
			SKU:               sp.sku,
			Quantity:          sp.quantity,
			Price:             decimal.RequireFromString(sp.price),
			LowStockThreshold: &threshold,
			CategoryID:        categoryIDs[sp.category],
			SupplierID:        supplierIDs[sp.supplier],
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("crear producto")
		}
		if sp.sku == "ELEC-003" {
			cableID = out.ID
		}
	}
	log.Info().Int("count", len(products)).Msg("productos creados con stock inicial")

	// Una salida de ejemplo para que el historial tenga más que altas.
	if _, err := engine.RecordTransaction(ctx, inventory.TransactionInputDTO{
		ProductID: cableID,
		UserID:    adminID,
		Action:    "remove",
		Quantity:  5,
		Notes:     "Sold to customer",
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar transacción de ejemplo")
	}

	log.Info().Msg("base de datos poblada")
	log.Info().Msg("cuentas de prueba: admin/admin123, staff/staff123, viewer/viewer123")
}
