package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fentz26/taskview/internal/server"
	"github.com/fentz26/taskview/internal/store"
)

var (
	listenAddr   string
	dbPath       string
	fixturesPath string
	redisURL     string
	cacheTTL     time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development task API",
	Long:  `Serves GET /api/tasks and GET /health from a SQLite task store, optionally seeded from a fixtures file and cached in Redis.`,
	RunE:  runServe,
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".taskview", "tasks.db")

	serveCmd.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:3000", "Listen address for the API server")
	serveCmd.Flags().StringVar(&dbPath, "db", defaultDB, "Path to SQLite database")
	serveCmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML or JSON file of tasks to import on startup")
	serveCmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for caching the task list (e.g. redis://localhost:6379/0)")
	serveCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 30*time.Second, "Lifetime of the cached task list")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("Starting task API...")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing database connection...")
		if err := s.Close(); err != nil {
			log.WithError(err).Error("database close")
		}
	}()

	ctx := context.Background()
	if fixturesPath != "" {
		tasks, err := store.LoadFixtures(fixturesPath)
		if err != nil {
			return err
		}
		stored, err := s.ImportTasks(ctx, tasks)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"path": fixturesPath, "count": len(stored)}).Info("imported fixtures")
	}

	var source store.TaskSource = s
	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return err
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		cache := store.NewCache(s, rdb, cacheTTL)
		cache.Invalidate(ctx)
		source = cache
		log.WithFields(log.Fields{"addr": opts.Addr, "ttl": cacheTTL}).Info("redis cache enabled")
	}

	srv := server.NewServer(source, s, listenAddr)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.Start()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("initiating graceful shutdown")
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("server error")
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown")
	}

	log.Info("Shutdown complete")
	return nil
}
