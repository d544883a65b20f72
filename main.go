package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/postgres"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	"github.com/writewithwrabit/tracker/config"
	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/handlers"
	"github.com/writewithwrabit/tracker/logger"
	"github.com/writewithwrabit/tracker/store"
)

func main() {
	logger.Init(logger.Config{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(logger.Config{Debug: cfg.LogDebug, File: cfg.LogFile})

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := openDB(ctx, cfg)
	if err != nil {
		logger.Fatal("database unavailable", "driver", cfg.Driver(), "error", err)
	}
	defer conn.Close()

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		logger.Fatal("firebase init failed", "error", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		logger.Fatal("firebase auth init failed", "error", err)
	}

	h := handlers.New(store.New(conn), loc)
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: h.Routes(handlers.RouterConfig{
			Verifier:       client,
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.Port, "timezone", loc.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", "error", err)
	}
}

// openDB connects with the configured driver and applies pending migrations.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	conn, err := sql.Open(cfg.Driver(), cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	if cfg.MigrateOnStart {
		migrations, err := wrabitDB.Migrations()
		if err != nil {
			conn.Close()
			return nil, err
		}
		if _, err := wrabitDB.Migrate(ctx, conn, migrations); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return conn, nil
}
