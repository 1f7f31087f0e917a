package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	app "github.com/flowcore/engine"
	"github.com/flowcore/engine/internal/archive"
	"github.com/flowcore/engine/internal/config"
	"github.com/flowcore/engine/internal/engine"
	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/internal/script"
	"github.com/flowcore/engine/internal/server"
	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/log"
)

type flowcore struct {
	cfg        *config.Config
	services   service.Services
	registry   *node.Registry
	events     *engine.Events
	store      *archive.Store
	apiServer  *server.Server
	httpServer *http.Server
	quit       chan os.Signal
}

var (
	ErrCreateArchive = errors.New("failed to create run archive")
	ErrCreateVault   = errors.New("failed to create vault client")
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &flowcore{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()

	if err := s.run(); err != nil {
		slog.Error("Failed to start application", log.Error(err))
		os.Exit(1)
	}
}

func (s *flowcore) run() error {
	if err := s.initializeServices(); err != nil {
		return err
	}
	s.initializeEngine()
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
	return nil
}

func (s *flowcore) setupLogging() {
	level, ok := logLevels[s.cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Flowcore Engine starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort),
		slog.String("redis_addr", s.cfg.RedisAddr),
		slog.String("vault_addr", s.cfg.VaultAddr),
		slog.String("archive_bucket", s.cfg.ArchiveBucketURL))
}

// initializeServices wires the external clients the node capabilities
// depend on. Anything left unconfigured falls back to a local stand-in
func (s *flowcore) initializeServices() error {
	if s.cfg.OpenAIKey != "" {
		client := service.NewOpenAIClient(
			s.cfg.OpenAIKey, s.cfg.OpenAIBaseURL,
		)
		s.services.Model = service.NewOpenAIModel(client)
		s.services.Vision = service.NewOpenAIVision(client)
		s.services.Speech = service.NewOpenAISpeech(client)
	}

	if s.cfg.RedisAddr != "" {
		s.services.Retriever = service.NewRedisRetriever(redis.NewClient(
			&redis.Options{
				Addr:     s.cfg.RedisAddr,
				Password: s.cfg.RedisPassword,
				DB:       s.cfg.RedisDB,
			},
		))
	}

	if s.cfg.VaultAddr != "" {
		secrets, err := service.NewVaultSecrets(service.VaultConfig{
			Address:    s.cfg.VaultAddr,
			Token:      s.cfg.VaultToken,
			PathPrefix: s.cfg.VaultPrefix,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCreateVault, err)
		}
		s.services.Secrets = secrets
	}

	if s.cfg.ArchiveBucketURL != "" {
		store, err := archive.NewStore(context.Background(),
			s.cfg.ArchiveBucketURL, s.cfg.ArchivePrefix)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCreateArchive, err)
		}
		s.store = store
	}

	return nil
}

func (s *flowcore) initializeEngine() {
	s.registry = node.NewRegistry(s.services, script.NewRegistry())
	s.events = engine.NewEvents()
}

func (s *flowcore) startServer() {
	opts := []server.Option{
		server.WithDefaultOptions(s.cfg.Options()),
		server.WithLogger(slog.Default()),
	}
	if s.store != nil {
		opts = append(opts, server.WithArchive(s.store))
	}

	s.apiServer = server.NewServer(s.registry, s.events, opts...)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *flowcore) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()
	s.events.Close()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Error("Archive shutdown failed", log.Error(err))
		}
	}

	slog.Info("Server exited")
}
