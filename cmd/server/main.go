package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/osa911/glassesrelay/internal/config"
	"github.com/osa911/glassesrelay/internal/cooldown"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/observability/metrics"
	"github.com/osa911/glassesrelay/internal/observability/tracing"
	"github.com/osa911/glassesrelay/internal/server"
	"github.com/osa911/glassesrelay/internal/service"
	"github.com/osa911/glassesrelay/internal/utils"
	"github.com/osa911/glassesrelay/internal/version"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := &logging.Config{
		Level:       strings.ToLower(cfg.LogLevel),
		File:        cfg.LogFile,
		MaxSize:     cfg.LogMaxSize,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAge:      cfg.LogMaxAge,
		LogRequests: cfg.LogRequests,
	}
	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting relay %s in %s mode", version.Info(), cfg.Environment)

	if !cfg.Telegram.Configured() {
		// Submissions will fail with a 500 until both are set
		logger.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		Version:     version.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown: %v", err)
		}
	}()

	deps := server.Dependencies{}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = metrics.NewRelayMetrics(reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	switch cfg.CooldownMode {
	case config.CooldownModeRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL: %v", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// The guard fails open, so the relay still serves while Redis is away
			logger.Warn("Redis is not reachable yet: %v", err)
		}

		guard := cooldown.NewRedisGuard(rdb, utils.ClientIP, cooldown.WithWindow(cfg.CooldownWindow))
		deps.Guard = guard
		deps.Store = guard
	case config.CooldownModeCookie:
		deps.Guard = cooldown.NewCookieGuard(cfg.CooldownWindow, cfg.CookieSecure)
	default:
		deps.Guard = cooldown.NoopGuard{}
	}
	logger.Info("Cooldown mode: %s (window %s)", deps.Guard.Mode(), cfg.CooldownWindow)

	deps.Sender = service.NewTelegramService(cfg.Telegram, deps.Metrics)

	srv, err := server.NewServer(cfg, deps)
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Relay stopped")
}
