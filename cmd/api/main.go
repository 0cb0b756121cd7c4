package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-assistant/internal/api/http/handlers"
	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/config"
	"github.com/spec-kit/ops-assistant/internal/events"
	"github.com/spec-kit/ops-assistant/internal/observability"
	"github.com/spec-kit/ops-assistant/internal/service"
	"github.com/spec-kit/ops-assistant/internal/store"
	"github.com/spec-kit/ops-assistant/internal/worker"

	httptransport "github.com/spec-kit/ops-assistant/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	inventory, err := store.LoadInventory(cfg.Data.InventoryPath, logger)
	if err != nil {
		logger.Fatal("failed to load inventory", zap.Error(err))
	}
	logger.Info("inventory loaded", zap.Int("items", len(inventory)))

	policies, err := store.LoadPolicyIndex(cfg.Data.PolicyDir)
	if err != nil {
		logger.Fatal("failed to load policy index", zap.Error(err))
	}
	logger.Info("policy index loaded", zap.Int("documents", len(policies)))

	ledger, err := store.NewTicketLedger(cfg.Data.TicketLedgerPath, cfg.Data.TicketIDSeed, logger)
	if err != nil {
		logger.Fatal("failed to open ticket ledger", zap.Error(err))
	}

	auditLogger, err := audit.NewLogger(cfg.Data.AuditLogPath, logger, metrics)
	if err != nil {
		logger.Fatal("failed to open audit log", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	inventoryService := service.NewInventoryService(inventory, auditLogger)
	policyService := service.NewPolicyService(policies, auditLogger)
	ticketService := service.NewTicketService(ledger, auditLogger, dispatcher)
	promptService := service.NewPromptService()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, ledger, auditLogger),
		Tools:     handlers.NewToolsHandler(inventoryService, policyService, ticketService, metrics),
		Resources: handlers.NewResourcesHandler(policyService),
		Prompts:   handlers.NewPromptsHandler(promptService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
