package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/smartsales-api/docs"
	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/auth"
	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/internal/application/reports"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	infraai "github.com/jhoicas/smartsales-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/smartsales-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/smartsales-api/internal/interfaces/http"
	"github.com/jhoicas/smartsales-api/pkg/config"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// @title        SmartSales API
// @version      1.0
// @description  Tablero de ventas para pequeños negocios: pronóstico, stock, asistente y reportes.
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
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.Close()

	salesUC := usecase.NewSalesUseCase(stores.TxRunner, stores.Sales)
	stockUC := inventory.NewStockUseCase(stores.TxRunner, stores.Products)
	dashboardUC := analytics.NewDashboardUseCase(stores.Sales, stores.Products, cfg.Forecast.MovingAverageWindow)

	chatSvc, err := infraai.NewChatService(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar asistente IA")
	}
	chatUC := usecase.NewChatUseCase(chatSvc, dashboardUC)

	// PDF: reporte de ventas con pronóstico y stock
	reportUC := reports.NewSalesReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator(), "Reporte de ventas - "+cfg.App.Name)

	var authUC *auth.AuthUseCase
	if cfg.JWT.Enabled() {
		authUC = auth.NewAuthUseCase(
			auth.Operator{Email: cfg.Admin.Email, PasswordHash: cfg.Admin.PasswordHash},
			auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		)
	} else {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura no exigen autenticación")
	}

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
	}, httpRouter.RouterDeps{
		SalesUC:     salesUC,
		StockUC:     stockUC,
		DashboardUC: dashboardUC,
		ChatUC:      chatUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
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
