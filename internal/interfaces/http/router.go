package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/auth"
	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/internal/application/reports"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesUC     *usecase.SalesUseCase
	StockUC     *inventory.StockUseCase
	DashboardUC *analytics.DashboardUseCase
	ChatUC      *usecase.ChatUseCase
	ReportUC    *reports.SalesReportUseCase
	AuthUC      *auth.AuthUseCase // nil si el login está deshabilitado
	JWTSecret   string            // vacío: las escrituras no exigen token
	Log         *logger.Logger
}

// ServerConfig opciones de la app Fiber.
type ServerConfig struct {
	AppName     string
	CORSOrigins string
	SwaggerFile string // ruta a swagger.json; se omite /docs si no existe
}

// NewApp crea la app Fiber con middlewares y rutas registradas.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: fiberErrorHandler(deps.Log),
	})
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.AppName + " API",
			}))
		} else {
			deps.Log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.AppName})
	})
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras
// pasan por JWT + rol admin cuando hay secreto configurado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	write := func(h fiber.Handler) []fiber.Handler {
		if deps.JWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin), h}
	}

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
		api.Post("/auth/login", authHandler.Login)
	}

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC, deps.Log)
	api.Get("/sales", salesHandler.List)
	api.Post("/sales", write(salesHandler.Append)...)
	api.Put("/sales", write(salesHandler.Replace)...)
	api.Delete("/sales/:label", write(salesHandler.Delete)...)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard", dashboardHandler.GetDashboard)

	// Productos
	productHandler := NewProductHandler(deps.StockUC, deps.DashboardUC, deps.Log)
	api.Get("/products", productHandler.List)
	api.Get("/products/outlook", productHandler.Outlook)
	api.Post("/products", write(productHandler.Upsert)...)
	api.Post("/products/restock", write(productHandler.Restock)...)
	api.Post("/products/sell", write(productHandler.Sell)...)
	api.Delete("/products/:name", write(productHandler.Delete)...)

	// Asistente IA
	if deps.ChatUC != nil {
		chatHandler := NewChatHandler(deps.ChatUC, deps.Log)
		api.Post("/chat", chatHandler.Ask)
	}

	// Reportes
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
		api.Get("/reports/sales.pdf", reportHandler.SalesPDF)
	}
}
