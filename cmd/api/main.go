package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cartsync/internal/config"
	"cartsync/internal/db"
	"cartsync/internal/fakestore"
	"cartsync/internal/httpserver"
	"cartsync/internal/migrate"
	cartrepo "cartsync/internal/repository/cart"
	cartsvc "cartsync/internal/service/cart"
	"cartsync/internal/syncjob"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo)
	remote := fakestore.NewClient(cfg.FakeStoreURL)
	job := syncjob.New(remote, cartRepo)

	// Initial sync. A failure here is logged, not fatal: reads keep serving
	// whatever local data already exists.
	switch count, err := job.Run(ctx); {
	case errors.Is(err, syncjob.ErrNoCarts):
		logger.Printf("initial sync: remote returned no carts")
	case err != nil:
		logger.Printf("initial sync failed: %v", err)
	default:
		logger.Printf("initial sync: %d carts synchronized", count)
	}

	scheduler := syncjob.NewScheduler(job, cfg.SyncInterval(), logger)
	scheduler.Start()

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc: cartService,
		SyncJob: job,
	}, cfg.FrontendOrigin)

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

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
