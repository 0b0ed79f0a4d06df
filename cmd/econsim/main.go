// Command econsim serves an interactive national economy simulation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talgya/econsim/internal/api"
	"github.com/talgya/econsim/internal/audit"
	"github.com/talgya/econsim/internal/config"
	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/entropy"
	"github.com/talgya/econsim/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("econsim: national economy simulation")

	// ── Audit trail ───────────────────────────────────────────────────
	var (
		store   audit.Store
		archive *persistence.AuditDB
	)
	switch cfg.AuditBackend {
	case config.BackendSQLite:
		archive, err = persistence.Open(cfg.AuditDBPath)
		if err != nil {
			slog.Error("failed to open audit archive", "path", cfg.AuditDBPath, "error", err)
			os.Exit(1)
		}
		store = archive
		slog.Info("audit archive opened", "backend", cfg.AuditBackend, "path", cfg.AuditDBPath)
	default:
		store = audit.NewFileStore(cfg.AuditLogPath)
		slog.Info("audit log ready", "backend", cfg.AuditBackend, "path", cfg.AuditLogPath)
	}
	auditLog := audit.NewLog(store, nil)
	defer auditLog.Close()

	// ── Randomness ────────────────────────────────────────────────────
	seed := cfg.Seed
	if seed == 0 {
		seed, err = entropy.NewSeed()
		if err != nil {
			slog.Error("failed to draw seed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("random source seeded", "seed", seed)

	// ── Simulation ────────────────────────────────────────────────────
	opts := engine.DefaultOptions()
	opts.MaxMagnitude = cfg.MaxMagnitude
	opts.ShockProbability = cfg.ShockProbability
	opts.PolicyProbability = cfg.PolicyProbability

	sim := engine.New(auditLog, entropy.NewSeeded(seed), opts)
	slog.Info("economy ready", "session", sim.ID, "summary", sim.Snapshot().Summary())

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Sim:       sim,
		Port:      cfg.Port,
		RateLimit: cfg.RateLimit,
	}
	apiServer.Start()

	fmt.Printf("\nThe economy is open for business (session %s).\n", sim.ID)
	fmt.Printf("API: http://localhost:%d/api/v1/state\n", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}

	if archive != nil {
		if counts, err := archive.CountByAction(ctx); err == nil {
			slog.Info("audit archive totals", "by_action", counts)
		}
	}
	slog.Info("final state", "summary", sim.Snapshot().Summary())
	fmt.Println("Simulation stopped.")
}
