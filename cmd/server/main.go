package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"patient-intake/internal/lookup"
	lookupMetrics "patient-intake/internal/lookup/metrics"
	"patient-intake/internal/platform/config"
	"patient-intake/internal/platform/httpserver"
	"patient-intake/internal/platform/logger"
	platformRedis "patient-intake/internal/platform/redis"
	"patient-intake/internal/registration"
	"patient-intake/internal/registration/handler"
	registrationMetrics "patient-intake/internal/registration/metrics"
	"patient-intake/internal/relay"
	httptransport "patient-intake/internal/transport/http"
	"patient-intake/pkg/platform/circuit"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformRedis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable, starting without lookup cache", "error", err)
	}

	var cache lookup.Cache
	var health httptransport.HealthChecker
	if redisClient != nil {
		cache = lookup.NewRedisCache(redisClient.Client, cfg.Lookup.CacheTTL)
		health = redisClient
		defer redisClient.Close()
	}

	provider := lookup.NewDatastoreClient(lookup.DatastoreOptions{
		BaseURL:          cfg.Lookup.BaseURL,
		CityResourceID:   cfg.Lookup.CityResourceID,
		StreetResourceID: cfg.Lookup.StreetResourceID,
		Timeout:          cfg.Lookup.Timeout,
	})
	breaker := circuit.New("lookup",
		circuit.WithFailureThreshold(cfg.Lookup.BreakerFailures),
		circuit.WithSuccessThreshold(cfg.Lookup.BreakerSuccesses),
	)
	lookupSvc := lookup.NewService(provider, cache, breaker, lookup.Options{
		MinQueryLength: cfg.Lookup.MinQueryLength,
		MaxResults:     cfg.Lookup.MaxResults,
		FetchLimit:     cfg.Lookup.FetchLimit,
	}, log, lookupMetrics.New())

	webhook := relay.NewWebhookClient(relay.Options{
		WebhookURL: cfg.Relay.WebhookURL,
		Timeout:    cfg.Relay.Timeout,
	})
	if cfg.Relay.WebhookURL == "" {
		log.Warn("no webhook URL configured, submissions will fail until one is set")
	}

	registrationSvc := registration.NewService(webhook, log, registrationMetrics.New())

	router := httptransport.NewRouter(httptransport.RouterOptions{
		Logger: log,
		Handlers: []httptransport.Mountable{
			handler.New(registrationSvc, log),
			handler.NewLookup(lookupSvc, log),
		},
		Redis: health,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting patient-intake", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
