package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/text/language"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	infraoauth "github.com/jhoicas/pos-api/internal/infrastructure/oauth"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/pos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		version, err := postgres.Migrate(cfg.DB.ConnectionString())
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	itemRepo := postgres.NewTransactionItemRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Imágenes de productos en Supabase Storage; sin STORAGE_URL el upload devuelve error.
	imageStorage := infrastorage.NewSupabaseStorage(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket)
	if cfg.Storage.URL == "" {
		log.Warn().Msg("STORAGE_URL no configurado: productos con imagen serán rechazados")
	}

	receiptLang, err := language.Parse(cfg.Receipt.Locale)
	if err != nil {
		log.Warn().Str("locale", cfg.Receipt.Locale).Msg("RECEIPT_LOCALE inválido, se usa en")
		receiptLang = language.English
	}
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.Receipt.StoreName, cfg.Receipt.Currency, receiptLang)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, itemRepo, imageStorage)
	reportUC := usecase.NewReportUseCase(reportRepo)
	transactionUC := sales.NewTransactionUseCase(txRunner, transactionRepo)
	itemUC := sales.NewItemUseCase(txRunner, transactionRepo, itemRepo)
	receiptUC := sales.NewReceiptUseCase(transactionRepo, itemRepo, receiptGenerator)

	// Login con Google solo si hay credenciales; si no, las rutas responden 503.
	var google ports.OAuthProvider
	if cfg.Google.Enabled() {
		google = infraoauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}

	metrics := httpRouter.NewMetrics("pos")
	loginLimiter := httpRouter.NewRateLimiter(cfg.HTTP.LoginRatePerMinute).
		OnReject(func() { metrics.RecordLogin("throttled") })
	stopCleanup := make(chan struct{})
	loginLimiter.StartCleanup(5*time.Minute, stopCleanup)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe docs/swagger.json)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		ReportUC:      reportUC,
		TransactionUC: transactionUC,
		ItemUC:        itemUC,
		ReceiptUC:     receiptUC,
		Google:        google,
		Metrics:       metrics,
		LoginLimiter:  loginLimiter,
		JWTSecret:     cfg.JWT.Secret,
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
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
