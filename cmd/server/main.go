package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	credentials "github.com/goliatone/go-credentials"
)

func main() {
	cfg, err := credentials.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	auther := credentials.NewAuthenticator(store, cfg)

	app := fiber.New(fiber.Config{
		AppName:               "go-credentials",
		DisableStartupMessage: !cfg.Debug,
	})

	credentials.RegisterAuthRoutes(app,
		credentials.WithAuther(auther),
		credentials.WithConfig(cfg),
		credentials.WithDebug(cfg.Debug),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("listen: %v", err)
		}
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func buildStore(ctx context.Context, cfg *credentials.EnvConfig) (credentials.CredentialStore, error) {
	if cfg.DSN == "" {
		return credentials.NewMemoryStore(), nil
	}

	db, err := credentials.OpenDB(cfg.DSN)
	if err != nil {
		return nil, err
	}

	store := credentials.NewBunStore(db)
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	return store, nil
}
