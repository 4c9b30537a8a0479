package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/db"
	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
	"github.com/danielhkuo/printvote/router"
	"github.com/danielhkuo/printvote/seed"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	candidates, err := loadCandidates(cfg)
	if err != nil {
		slog.Error("candidate list failed to load", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(context.Background(), cfg, candidates)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Registry ready", "store", cfg.StoreType, "candidates", len(candidates))

	reg := registry.New(store, registry.WithAuthorizationTTL(cfg.AuthTTL))

	// Create router
	mux := router.NewRouter(reg, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "auth_ttl", cfg.AuthTTL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// loadCandidates reads the configured candidate file, or falls back to the
// built-in list
func loadCandidates(cfg cliparse.Config) ([]models.Candidate, error) {
	if cfg.CandidatesFile == "" {
		return seed.DefaultCandidates(), nil
	}
	return seed.LoadCandidates(cfg.CandidatesFile)
}

// openStore builds the registry backend selected by cfg.StoreType. The
// returned func releases it.
func openStore(ctx context.Context, cfg cliparse.Config, candidates []models.Candidate) (registry.Store, func(), error) {
	switch cfg.StoreType {
	case cliparse.StoreSQLite:
		conn, err := db.Open()
		if err != nil {
			return nil, nil, err
		}
		store, err := db.NewStore(ctx, conn, candidates)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, func() { conn.Close() }, nil
	default:
		store, err := registry.NewMemoryStore(candidates)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
