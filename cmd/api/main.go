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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/backoffice-api/internal/application/providerpayments"
	"github.com/jhoicas/backoffice-api/internal/application/rolevisibility"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/cache"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title       Back-office API
// @version     1.0
// @description Visibilidad jerárquica por usuario y pagos agrupados por proveedor.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	visibilityRepo := postgres.NewRoleVisibilityRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	bankRepo := postgres.NewBankRepository(pool)
	bankAccountRepo := postgres.NewBankAccountRepository(pool)
	bankNumberRepo := postgres.NewBankNumberRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)

	// Caché de estructura de visibilidad: sin REDIS_ADDR queda deshabilitada.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, la caché fallará en cada acceso")
		}
		defer redisClient.Close()
	}
	structureCache := cache.NewVisibilityCache(redisClient, cfg.Redis.VisibilityTTL)

	// Eventos de pagos: sin KAFKA_BROKERS se descartan.
	var publisher providerpayments.EventPublisher = providerpayments.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka_producer"))
		defer producer.Close()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicador kafka habilitado")
	}

	visibilityUC := rolevisibility.NewUseCase(rolevisibility.Deps{
		Users:      userRepo,
		Visibility: visibilityRepo,
		Companies:  companyRepo,
		Brands:     brandRepo,
		Branches:   branchRepo,
		Cache:      structureCache,
		Logger:     log.Component("role_visibility"),
	})

	paymentsUC := providerpayments.NewUseCase(providerpayments.Deps{
		Packages:     postgres.NewInvoicePackageRepository(pool),
		BankAccounts: bankAccountRepo,
		BankNumbers:  bankNumberRepo,
		Providers:    providerRepo,
		Payments:     postgres.NewPaymentsByProviderRepository(pool),
		Layouts:      postgres.NewBankLayoutRepository(pool),
		Tx:           postgres.NewTxRunner(pool),
		Events:       publisher,
		PDF:          infrapdf.NewLayoutPDFGenerator(),
		Logger:       log.Component("provider_payments"),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init` previo)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Back-office API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Payments:     paymentsUC,
		Visibility:   visibilityUC,
		CompanyUC:    usecase.NewCompanyUseCase(companyRepo, visibilityUC, structureCache),
		BrandUC:      usecase.NewBrandUseCase(brandRepo, structureCache),
		BranchUC:     usecase.NewBranchUseCase(branchRepo, companyRepo, structureCache),
		BankUC:       usecase.NewBankUseCase(bankRepo, log.Component("banks")),
		BankAccounts: usecase.NewBankAccountUseCase(bankAccountRepo, bankNumberRepo, bankRepo, companyRepo),
		ProviderUC:   usecase.NewProviderUseCase(providerRepo, bankRepo),
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
