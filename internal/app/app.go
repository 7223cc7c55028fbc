package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/config"
	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/handler"
	"github.com/JeffMenca/pitstop-manager/internal/middleware"
	"github.com/JeffMenca/pitstop-manager/internal/observer"
	"github.com/JeffMenca/pitstop-manager/internal/router"
	"github.com/JeffMenca/pitstop-manager/internal/service"
	"github.com/JeffMenca/pitstop-manager/internal/session"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	bus := event.NewBus()
	cleanups := []func(){}

	// The session context: one bus, one store, one writer discipline.
	var storage session.Storage
	if cfg.SessionFile != "" {
		fileStorage, err := session.NewFileStorage(cfg.SessionFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open session storage: %w", err)
		}
		storage = fileStorage
		cleanups = append(cleanups, func() { _ = fileStorage.Close() })

		listenerCtx, cancelListener := context.WithCancel(context.Background())
		listener := session.NewChangeListener(fileStorage, bus, cfg.StoragePollInterval)
		go listener.Run(listenerCtx)
		cleanups = append(cleanups, cancelListener)

		slog.Info("session storage ready", "file", cfg.SessionFile)
	} else {
		storage = session.NewMemoryStorage()
		slog.Info("session storage ready", "mode", "memory")
	}

	store := session.NewStore(storage, bus)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, store)
	obs := observer.New(store, bus, cfg.SessionPollInterval)
	guard := middleware.NewGuard(obs)

	authService := service.NewAuthService(client, store)
	vehicleService := service.NewVehicleService(client)
	workOrderService := service.NewWorkOrderService(client)
	inventoryService := service.NewInventoryService(client)
	invoiceService := service.NewInvoiceService(client)
	paymentService := service.NewPaymentService(client)

	appRouter := router.New(cfg, guard, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Session: handler.NewSessionHandler(obs),
		Events:  handler.NewEventsHandler(bus),
		Pages:   handler.NewPagesHandler(obs),
		Resources: handler.NewResourceHandler(
			vehicleService,
			workOrderService,
			inventoryService,
			invoiceService,
			paymentService,
		),
	})

	// No server-wide write timeout: /events is a long-lived stream. The
	// other routes get a per-request timeout in the router.
	server := &http.Server{
		Addr:              ":" + cfg.GatewayPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		cleanupFuncs: cleanups,
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("gateway starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("gateway failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("gateway stopped")
	return nil
}
