package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	ReportUC      *usecase.ReportUseCase
	TransactionUC *sales.TransactionUseCase
	ItemUC        *sales.ItemUseCase
	ReceiptUC     *sales.ReceiptUseCase
	Google        ports.OAuthProvider // opcional
	Metrics       *Metrics
	LoginLimiter  *RateLimiter
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleCashier)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Google, deps.JWTSecret, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/google", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)

	// Usuarios: administración solo admin; el cambio de contraseña es del propio usuario
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/auth/users", authMW)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)
	users.Put("/:id/active", adminOnly, userHandler.ToggleActive)
	users.Put("/:id/change-password", authHandler.ChangePassword)

	// Catálogo: lectura pública, escritura solo admin
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authMW, adminOnly, categoryHandler.Create)
	categories.Put("/:id", authMW, adminOnly, categoryHandler.Update)
	categories.Delete("/:id", authMW, adminOnly, categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/category/:id_categories", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authMW, adminOnly, productHandler.Create)
	products.Put("/:id", authMW, adminOnly, productHandler.Update)
	products.Delete("/:id", authMW, adminOnly, productHandler.Delete)

	// Transactions (admin, cashier); edición y borrado solo admin
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.ReceiptUC)
	transactions := api.Group("/transactions", authMW, staff)
	transactions.Post("/", txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Get("/:id/receipt", txHandler.Receipt)
	transactions.Put("/:id", adminOnly, txHandler.Update)
	transactions.Delete("/:id", adminOnly, txHandler.Delete)

	// Transaction items (admin, cashier)
	itemHandler := NewTransactionItemHandler(deps.ItemUC, deps.Metrics)
	items := api.Group("/transaction-items", authMW, staff)
	items.Post("/", itemHandler.Create)
	items.Get("/item/:id", itemHandler.GetByID)
	items.Put("/item/:id", itemHandler.Update)
	items.Delete("/item/:id", itemHandler.Delete)
	items.Get("/:transaction_id", itemHandler.ListByTransaction)

	// Reportes (admin)
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/report", authMW, adminOnly, reportHandler.SalesByCategory)
}
