package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"timeclock/internal/api"
	"timeclock/internal/cache"
	"timeclock/internal/config"
	"timeclock/internal/domain"
	"timeclock/internal/metrics"
	"timeclock/internal/middleware"
	"timeclock/internal/services"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "timeclock-server",
		Short: "Task tracker with per-task time logging",
		Long: `timeclock-server is the HTTP service behind the task tracker.

It owns the task registry and the time tracking core: starting and stopping
work intervals (at most one open interval per user at any time) and
aggregating logged intervals into daily summaries.

Configuration is read from environment variables:
  TIMECLOCK_HTTP_ADDR          Listen address (default :8080)
  TIMECLOCK_STORAGE_BACKEND    sqlite or postgres (default sqlite)
  TIMECLOCK_SQLITE_PATH        SQLite database path (default timeclock.db)
  TIMECLOCK_POSTGRES_DSN       Postgres connection string
  TIMECLOCK_REDIS_ADDR         Redis address for the summary cache (optional)
  TIMECLOCK_CACHE_TTL          Summary cache TTL (default 5m)
  TIMECLOCK_TIME_ZONE          Time zone for day boundaries (default Local)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides TIMECLOCK_HTTP_ADDR")
	return cmd
}

func run(cfg *config.Config) error {
	repo, err := config.NewRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	var summaryCache *cache.SummaryCache
	if cfg.Cache.RedisAddr != "" {
		summaryCache, err = cache.New(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to connect summary cache: %w", err)
		}
		defer summaryCache.Close()
		log.Printf("summary cache enabled at %s", cfg.Cache.RedisAddr)
	}

	clock := domain.NewSystemClock()
	loc := cfg.Location()

	// Timers may still be running from before a restart
	if open, err := repo.CountOpenTimeLogs(context.Background()); err != nil {
		log.Printf("failed to count open time logs: %v", err)
	} else {
		metrics.SetActiveTimers(open)
	}

	// *cache.SummaryCache is nil-unsafe behind the interfaces, so only
	// hand it over when configured
	var invalidator services.SummaryInvalidator
	var cacheStore services.SummaryCacheStore
	if summaryCache != nil {
		invalidator = summaryCache
		cacheStore = summaryCache
	}

	taskService := services.NewTaskServiceWithLimits(repo, clock, invalidator,
		cfg.Validation.TaskTitleMinLength, cfg.Validation.TaskTitleMaxLength)
	timerService := services.NewTimerService(repo, clock, invalidator)
	summaryService := services.NewSummaryService(repo, clock, loc, cacheStore)

	apiHandler := api.New(taskService, timerService, summaryService, loc)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/api/", middleware.Identity(apiHandler))

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: middleware.Metrics(mux),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (backend: %s)", cfg.Server.Addr, cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
