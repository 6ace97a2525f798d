package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mudia/internal/catalog"
	"mudia/internal/config"
	httpapi "mudia/internal/http"
	"mudia/internal/logger"
	"mudia/internal/notify"
	"mudia/internal/repository"
	"mudia/internal/service"
	"mudia/internal/view"

	_ "mudia/docs"
)

// @title Mudia Stores API
// @version 1.0
// @description Storefront state manager: catalog, cart, checkout simulation, auth, orders and admin dashboard.
// @BasePath /api/v1
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "mudia", Env: cfg.AppEnv, Level: cfg.LogLevel})

	files, err := repository.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Error("open state dir", "err", err)
		os.Exit(1)
	}
	store, err := repository.NewMemoryStore(files)
	if err != nil {
		log.Error("restore state", "err", err)
		os.Exit(1)
	}
	store.LoadProducts(catalog.Products())
	store.SeedOrders(catalog.SampleOrders())

	users := repository.NewMemoryUsers(store)
	session := repository.NewMemorySession(store)
	cart := repository.NewMemoryCart(store)
	orders := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	notices := notify.NewCenter(cfg.NotificationTTL)
	viewState := view.NewState()

	authSvc := service.NewAuthService(users, session, viewState, notices)
	cartSvc := service.NewCartService(cart, store, notices)
	orderSvc := service.NewOrderService(service.OrderServiceConfig{
		Orders:          orders,
		Cart:            cart,
		Session:         session,
		Products:        store,
		Tx:              tx,
		Notifier:        notices,
		ProcessingDelay: cfg.CheckoutDelay,
	})
	catalogSvc := service.NewCatalogService(store)

	srv := httpapi.NewServer(httpapi.ServerConfig{
		Auth:          authSvc,
		Cart:          cartSvc,
		Orders:        orderSvc,
		Catalog:       catalogSvc,
		Notifications: notices,
		View:          viewState,
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: srv.Engine(),
	}

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
