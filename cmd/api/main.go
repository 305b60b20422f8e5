package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"botshop/internal/config"
	"botshop/internal/db"
	"botshop/internal/httpserver"
	"botshop/internal/notify"
	basketrepo "botshop/internal/repository/basket"
	catalogrepo "botshop/internal/repository/catalog"
	favoriterepo "botshop/internal/repository/favorite"
	orderrepo "botshop/internal/repository/order"
	shoprepo "botshop/internal/repository/shop"
	userrepo "botshop/internal/repository/user"
	basketsvc "botshop/internal/service/basket"
	catalogsvc "botshop/internal/service/catalog"
	favoritesvc "botshop/internal/service/favorite"
	ordersvc "botshop/internal/service/order"
	usersvc "botshop/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	shopRepo := shoprepo.NewPostgres(dbpool)
	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	basketRepo := basketrepo.NewPostgres(dbpool)
	favoriteRepo := favoriterepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	userService := usersvc.New(userRepo, shopRepo)
	catalogService := catalogsvc.New(catalogRepo)
	basketService := basketsvc.New(userRepo, catalogRepo, basketRepo)
	favoriteService := favoritesvc.New(userRepo, catalogRepo, favoriteRepo)
	orderService := ordersvc.New(userRepo, shopRepo, orderRepo, logger)

	gateway := notify.NewTelegramGateway(cfg.TelegramBotToken, cfg.TelegramAPIBase, cfg.NotifyTimeout)
	notifier := notify.NewDispatcher(gateway, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:     userService,
		CatalogSvc:  catalogService,
		BasketSvc:   basketService,
		FavoriteSvc: favoriteService,
		OrderSvc:    orderService,
		Notifier:    notifier,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
