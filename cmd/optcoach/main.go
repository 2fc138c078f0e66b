package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/config"
	"github.com/claude/optcoach/internal/draft"
	"github.com/claude/optcoach/internal/mcp"
	"github.com/claude/optcoach/internal/server"
	"github.com/claude/optcoach/internal/service"
	"github.com/claude/optcoach/internal/storage"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// store is what the service and the seeder need from either backend.
type store interface {
	service.Store
	storage.Seeder
	Ping(ctx context.Context) error
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("optcoach starting", "version", Version)

	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, closeDB, err := openStore(ctx, cfg.Database, *migrateOnly, log)
	if err != nil {
		log.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	if db == nil {
		log.Info("migrate-only: exiting")
		return
	}
	defer closeDB()

	if cfg.Database.SeedFile != "" {
		n, err := storage.SeedFile(ctx, db, cfg.Database.SeedFile)
		if err != nil {
			log.Error("seeding failed", "file", cfg.Database.SeedFile, "error", err)
			os.Exit(1)
		}
		log.Info("clients seeded", "count", n)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "exercises", len(cat.Exercises), "templates", len(cat.Templates))

	var completer draft.Completer
	if cfg.Completion.Enabled {
		completer = draft.NewOpenAIClient(draft.OpenAIConfig{
			BaseURL:     cfg.Completion.BaseURL,
			APIKey:      cfg.Completion.APIKey,
			Model:       cfg.Completion.Model,
			Temperature: cfg.Completion.Temperature,
			MaxTokens:   cfg.Completion.MaxTokens,
			Timeout:     cfg.Completion.Timeout,
		})
		log.Info("AI drafts enabled", "model", cfg.Completion.Model)
	} else {
		log.Info("AI drafts disabled; programs are built from templates")
	}

	svc := service.New(db, cat, draft.NewGenerator(cat, completer, log), log)
	srv := server.New(svc, db, cfg.Auth.APIKey, log)
	srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcp.New(svc, Version, log)))

	// Listen on tsnet or plain TCP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore connects the configured backend. For postgres it applies
// migrations first and returns a nil store when migrateOnly is set.
func openStore(ctx context.Context, cfg config.DatabaseConfig, migrateOnly bool, log *slog.Logger) (store, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if migrateOnly {
			return nil, nil, nil
		}
		lite, err := storage.OpenLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database opened", "driver", cfg.Driver, "path", cfg.Path)
		return lite, func() { _ = lite.Close() }, nil
	default:
		dsn := cfg.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			return nil, nil, err
		}
		log.Info("migrations applied")
		if migrateOnly {
			return nil, nil, nil
		}
		db, err := storage.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connected", "driver", cfg.Driver)
		return db, db.Close, nil
	}
}
