package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/regma/inventario-api/internal/application/auth"
	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/pkg/jwt"
	"github.com/regma/inventario-api/pkg/logger"
)

// Roles con permiso para dar de alta inventarios.
var provisionRoles = []string{"admin", "bodeguero"}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	Production  bool
	CORSOrigins string
	Log         *logger.Logger
}

// NewApp construye la app Fiber con el manejador de errores y los middlewares globales
// (recover, CORS, log de peticiones).
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(cfg.Production, log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger(log))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustStock *inventory.AdjustStockUseCase
	Ledgers     *inventory.LedgerUseCase
	Kardex      *inventory.KardexUseCase
	AuthUC      *auth.AuthUseCase
	Signer      *jwt.Signer
	// GraphQL se monta en POST /graphql si no es nil.
	GraphQL fiber.Handler

	ServiceName     string
	Production      bool
	RateLimitMax    int
	RateLimitWindow time.Duration
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	var apiHandlers []fiber.Handler
	if deps.RateLimitMax > 0 {
		apiHandlers = append(apiHandlers, limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: deps.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return respondError(c, fiber.StatusTooManyRequests, "demasiadas peticiones, intente más tarde")
			},
		}))
	}
	api := app.Group("/api", apiHandlers...)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Production, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Inventario: el token es opcional; si viene, define el actor del movimiento.
	inv := api.Group("/inventario", OptionalAuth(deps.Signer))
	h := NewInventoryHandler(deps.AdjustStock, deps.Ledgers, deps.Kardex, deps.Production, deps.Log)
	inv.Get("/", h.ListLedgers)
	inv.Post("/", AuthMiddleware(deps.Signer), RequireRole(provisionRoles...), h.CreateLedger)
	inv.Get("/:id", h.GetLedger)
	inv.Patch("/:id", h.AdjustStock)
	inv.Get("/:id/movimientos", h.ListMovements)
	inv.Get("/:id/kardex", h.Kardex)

	if deps.GraphQL != nil {
		app.Post("/graphql", OptionalAuth(deps.Signer), deps.GraphQL)
	}
}
