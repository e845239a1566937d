package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/regma/inventario-api/internal/application/auth"
	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/domain/repository"
	"github.com/regma/inventario-api/internal/infrastructure/cache"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/regma/inventario-api/internal/infrastructure/pdf"
	"github.com/regma/inventario-api/internal/infrastructure/postgres"
	appgraphql "github.com/regma/inventario-api/internal/interfaces/graphql"
	httpRouter "github.com/regma/inventario-api/internal/interfaces/http"
	"github.com/regma/inventario-api/pkg/config"
	"github.com/regma/inventario-api/pkg/jwt"
	"github.com/regma/inventario-api/pkg/logger"

	_ "github.com/regma/inventario-api/docs"
)

const (
	swaggerFile  = "./docs/swagger.json"
	devJWTSecret = "regma-dev-secret-no-usar-en-produccion"
)

// @title        REGMA Inventario API
// @version      1.0
// @description  Ajustes de stock (entrada, salida, ajuste) con historial auditable.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		ledgers  repository.StockLedgerRepository
		catalog  repository.CatalogRepository
		users    repository.UserRepository
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		memory.SeedDemo(store)
		txRunner = memory.NewTxRunner(store)
		ledgers = memory.NewStockLedgerRepository(store)
		catalog = memory.NewCatalogRepository(store)
		users = memory.NewUserRepository(store)
		log.Warn().Str("ledger_id", memory.DemoLedgerID).Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		ledgers = postgres.NewStockLedgerRepository(pool)
		catalog = postgres.NewCatalogRepository(pool)
		users = postgres.NewUserRepository(pool)
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, catálogo sin caché")
		} else {
			defer rdb.Close()
			catalog = cache.NewCatalogCache(catalog, rdb, cfg.Redis.CacheTTL, log)
		}
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: se usa un secret de desarrollo")
		secret = devJWTSecret
	}
	signer := jwt.NewSigner(secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	adjustUC := inventory.NewAdjustStockUseCase(txRunner, ledgers, catalog, log)
	ledgerUC := inventory.NewLedgerUseCase(ledgers, catalog, log)
	kardexUC := inventory.NewKardexUseCase(ledgers, catalog, infrapdf.NewKardexPDFGenerator())
	authUC := auth.NewAuthUseCase(users, signer)

	schema, err := appgraphql.NewSchema(appgraphql.NewResolver(adjustUC, ledgerUC))
	if err != nil {
		log.Fatal().Err(err).Msg("esquema GraphQL")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Production:  cfg.App.IsProduction(),
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "REGMA Inventario API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustStock:     adjustUC,
		Ledgers:         ledgerUC,
		Kardex:          kardexUC,
		AuthUC:          authUC,
		Signer:          signer,
		GraphQL:         appgraphql.Handler(schema),
		ServiceName:     cfg.App.Name,
		Production:      cfg.App.IsProduction(),
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		Log:             log,
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
