package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"minnetherapy/internal/app"
	authhandler "minnetherapy/internal/auth/handler"
	authmetrics "minnetherapy/internal/auth/metrics"
	"minnetherapy/internal/auth/secrets"
	authservice "minnetherapy/internal/auth/service"
	dirhandler "minnetherapy/internal/directory/handler"
	dirmetrics "minnetherapy/internal/directory/metrics"
	dirservice "minnetherapy/internal/directory/service"
	jwttoken "minnetherapy/internal/jwt_token"
	"minnetherapy/internal/platform/config"
	"minnetherapy/internal/platform/httpserver"
	"minnetherapy/internal/platform/logger"
	platformmetrics "minnetherapy/internal/platform/metrics"
	"minnetherapy/internal/platform/redis"
	rlmetrics "minnetherapy/internal/ratelimit/metrics"
	rlmw "minnetherapy/internal/ratelimit/middleware"
	rlmodels "minnetherapy/internal/ratelimit/models"
	"minnetherapy/internal/ratelimit/store/bucket"
	rlservice "minnetherapy/internal/ratelimit/service"
	"minnetherapy/internal/seed"
	httptransport "minnetherapy/internal/transport/http"
	audit "minnetherapy/pkg/platform/audit"
	auditpublisher "minnetherapy/pkg/platform/audit/publisher"
	"minnetherapy/pkg/platform/audit/publishers/kafka"
	auditmemory "minnetherapy/pkg/platform/audit/store/memory"
)

const (
	auditBuffer     = 1024
	auditPartitions = 3
)

// loginLimit bounds credential attempts per client IP.
var loginLimit = rlmodels.Limit{RequestsPerWindow: 10, Window: time.Minute}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer stores.Close()
	if stores.DB() == nil {
		report, err := stores.Seed(ctx, seed.WithLogger(log))
		if err != nil {
			return fmt.Errorf("seed in-memory stores: %w", err)
		}
		log.Info("seeded in-memory directory",
			"specializations", report.Specializations,
			"providers", report.Providers,
		)
	}

	health := map[string]httptransport.HealthCheck{stores.Backend: stores.Providers.Ping}

	auditStore, closeAudit, err := openAuditStore(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	publisher := auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithAsyncBuffer(auditBuffer),
		auditpublisher.WithLogger(log),
	)
	defer publisher.Close()

	reg := prometheus.DefaultRegisterer
	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)

	directory := dirservice.New(stores.Providers, stores.Specializations,
		dirservice.WithLogger(log),
		dirservice.WithAuditPublisher(publisher),
		dirservice.WithMetrics(dirmetrics.New(reg)),
		dirservice.WithSpecializationCacheTTL(cfg.SpecializationCacheTTL),
		dirservice.WithTracer(otel.Tracer("minnetherapy/directory")),
	)
	auth := authservice.New(stores.Users, tokens,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(publisher),
		authservice.WithMetrics(authmetrics.New(reg)),
		authservice.WithTokenTTL(cfg.TokenTTL),
		authservice.WithPasswordCost(secrets.DefaultCost),
	)
	auth.Warm()

	rlm := rlmetrics.New(reg)
	limiterOpts := []rlservice.Option{
		rlservice.WithLimit(rlmodels.ClassSearch, rlmodels.Limit{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
		}),
		rlservice.WithLimit(rlmodels.ClassAuth, loginLimit),
		rlservice.WithLogger(log),
		rlservice.WithMetrics(rlm),
	}
	var primary rlservice.BucketStore = bucket.New()
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		primary = bucket.NewRedis(redisClient.Client)
		limiterOpts = append(limiterOpts, rlservice.WithFallback(bucket.New()))
		health["redis"] = redisClient.Health
		log.Info("rate limiting backed by redis")
	}
	limits := rlmw.New(rlservice.New(primary, limiterOpts...), log,
		rlmw.WithDisabled(cfg.RateLimit.Disabled),
		rlmw.WithAuditPublisher(publisher),
		rlmw.WithMetrics(rlm),
		rlmw.WithGlobalLimit(cfg.RateLimit.GlobalRPS, cfg.RateLimit.GlobalBurst),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Directory:      dirhandler.New(directory, log),
		Auth:           authhandler.New(auth, log),
		Validator:      jwttoken.NewJWTServiceAdapter(tokens),
		RateLimit:      limits,
		Metrics:        platformmetrics.New(reg),
		MetricsHandler: promhttp.Handler(),
		Health:         health,
	})

	log.Info("starting minnetherapy directory",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store", stores.Backend,
	)
	return httpserver.Run(ctx, httpserver.New(cfg.Addr, router), log)
}

// openAuditStore returns the Kafka sink when brokers are configured and an
// in-memory sink otherwise.
func openAuditStore(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Info("no kafka brokers configured, audit events kept in memory")
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	store, err := kafka.New(ctx, cfg.Brokers, cfg.AuditTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("connect audit kafka: %w", err)
	}
	if err := store.EnsureTopic(ctx, auditPartitions, 1); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	return store, store.Close, nil
}
