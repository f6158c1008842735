package main

import (
	"context"
	"errors"
	"log"
	"os"

	"cartsync/internal/config"
	"cartsync/internal/db"
	"cartsync/internal/fakestore"
	"cartsync/internal/migrate"
	cartrepo "cartsync/internal/repository/cart"
	"cartsync/internal/syncjob"
)

// One-shot sync pass, for cron jobs and manual runs.
func main() {
	logger := log.New(os.Stdout, "[sync] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	job := syncjob.New(fakestore.NewClient(cfg.FakeStoreURL), cartrepo.NewPostgres(pool))

	count, err := job.Run(ctx)
	if errors.Is(err, syncjob.ErrNoCarts) {
		logger.Println("remote returned no carts, nothing to do")
		return
	}
	if err != nil {
		logger.Fatalf("sync failed: %v", err)
	}

	logger.Printf("%d carts synchronized", count)
}
