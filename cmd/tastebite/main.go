package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tastebite/tastebite-service/internal/config"
	"github.com/tastebite/tastebite-service/internal/logger"
	"github.com/tastebite/tastebite-service/internal/pkg/gateway"
	"github.com/tastebite/tastebite-service/internal/pkg/handlers"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

func main() {
	cfg := config.ParseCfg()

	if err := logger.NewZapLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %s", err.Error())
	}
	defer logger.Sync()

	db, err := repository.NewPostgresDB(cfg.DBUri)
	if err != nil {
		log.Fatalf("failed to initialize db: %s", err.Error())
	}
	defer db.Close()

	if err := repository.ApplyMigrations(db, "internal/pkg/repository/schema"); err != nil {
		log.Fatalf("failed to apply migrations: %s", err.Error())
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := repository.NewPgxPool(baseCtx, cfg.DBUri)
	if err != nil {
		log.Fatalf("failed to initialize pgx pool: %s", err.Error())
	}
	defer pool.Close()

	repos := repository.NewRepository(db, pool)
	notifier := service.NewPgNotifier(pool, cfg.NotifyChannel)
	gwClient := gateway.NewHTTPClient(cfg.GatewayAddr)

	authSvc := service.NewAuthService(repos.Authorization)
	tenantSvc := service.NewTenantService(repos.Tenant, repos.Order, repos.Menu, repos.Authorization, notifier)
	menuSvc := service.NewMenuService(repos.Menu, tenantSvc)
	cartSvc := service.NewCartService(repos.Cart, menuSvc, tenantSvc, notifier)
	orderSvc := service.NewOrderService(repos.Order, repos.Cart, tenantSvc, notifier)
	paymentSvc := service.NewPaymentService(baseCtx, repos.Order, repos.Payment, tenantSvc, gwClient, notifier,
		service.PaymentConfig{
			ReturnURL:   cfg.ReturnURL,
			MaxAttempts: cfg.ReconcileAttempts,
			Interval:    cfg.ReconcileInterval(),
		})

	services := service.NewService(service.Dependencies{
		Authorization: authSvc,
		Tenant:        tenantSvc,
		Menu:          menuSvc,
		Cart:          cartSvc,
		Order:         orderSvc,
		Payment:       paymentSvc,
	})

	handler := handlers.NewHandler(services)
	srv := &handlers.Server{}

	go func() {
		if err := srv.Run(cfg.RunAddr, handler.InitApiRoutes()); err != nil {
			log.Fatal("error occured on server:", err)
		}
	}()

	quitCh := make(chan os.Signal, 1)
	signal.Notify(quitCh, syscall.SIGINT, syscall.SIGTERM)
	<-quitCh
	log.Println("tastebite service shutting down")

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("error occured on server while shutting down: %s", err.Error())
	}
}
