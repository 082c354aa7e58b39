package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"

	"eligibility/internal/admin"
	"eligibility/internal/decision"
	"eligibility/internal/decision/adapters"
	"eligibility/internal/decision/handler"
	decisionmetrics "eligibility/internal/decision/metrics"
	decisionstore "eligibility/internal/decision/store"
	httpapi "eligibility/internal/http"
	"eligibility/internal/platform/config"
	"eligibility/internal/platform/httpserver"
	"eligibility/internal/platform/kafka"
	"eligibility/internal/platform/logger"
	platformmetrics "eligibility/internal/platform/metrics"
	"eligibility/internal/platform/postgres"
	"eligibility/internal/upstream/accounts"
	"eligibility/internal/upstream/clients"
	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/platform/audit/httpaudit"
	"eligibility/pkg/platform/audit/publisher"
	kafkastore "eligibility/pkg/platform/audit/store/kafka"
	"eligibility/pkg/platform/audit/store/memory"
	auditpostgres "eligibility/pkg/platform/audit/store/postgres"
	"eligibility/pkg/platform/sentinel"
)

type decisionStore interface {
	decision.Store
	decision.Reader
}

type auditStore interface {
	audit.Store
	audit.Reader
}

// infra holds the backing resources main has to release on exit.
type infra struct {
	db        *sql.DB
	kafka     *kgo.Client
	decisions decisionStore
	audits    auditStore
	sink      audit.Store
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, warnings := config.FromEnv()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	for _, w := range warnings {
		log.Warn("config", "warning", w)
	}

	if err := run(cfg, log); err != nil {
		log.Error("eligibility service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := platformmetrics.NewRegistry()

	res, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer res.close(log)

	pub := publisher.New(res.sink,
		publisher.WithWorkers(cfg.Audit.Workers),
		publisher.WithBufferSize(cfg.Audit.BufferSize),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(registry)),
	)

	router := buildRouter(cfg, log, registry, res, pub)
	srv := httpserver.New(cfg.Server.Addr, router, cfg.UpstreamTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting eligibility service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = pub.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if err := pub.Shutdown(shutdownCtx); err != nil {
		log.Error("audit publisher did not drain", "error", err)
	}
	log.Info("eligibility service stopped")
	return nil
}

func buildInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	res := &infra{}

	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		res.decisions = decisionstore.NewInMemory()
		res.audits = memory.NewInMemoryStore()
	} else {
		db, err := postgres.Open(ctx, postgres.Config{
			URL:          cfg.Database.URL,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxOpenConns,
			ConnMaxLife:  30 * time.Minute,
		})
		if err != nil {
			return nil, err
		}
		res.db = db
		if cfg.Database.ApplySchema {
			if err := postgres.ApplySchema(ctx, db); err != nil {
				res.close(log)
				return nil, err
			}
		}
		res.decisions = decisionstore.NewPostgres(db)
		res.audits = auditpostgres.New(db)
	}
	res.sink = res.audits

	if len(cfg.Audit.KafkaBrokers) > 0 {
		kcfg := kafka.Config{
			Brokers:           cfg.Audit.KafkaBrokers,
			Topic:             cfg.Audit.KafkaTopic,
			Partitions:        3,
			ReplicationFactor: 1,
			ProduceTimeout:    5 * time.Second,
		}
		client, err := kafka.NewClient(kcfg)
		if err != nil {
			res.close(log)
			return nil, err
		}
		res.kafka = client
		if err := kafka.EnsureTopic(ctx, client, kcfg, log); err != nil {
			log.Warn("audit topic bootstrap failed, producing anyway", "topic", kcfg.Topic, "error", err)
		}
		res.sink = audit.MultiStore{res.audits, kafkastore.New(client, kcfg.Topic)}
		log.Info("audit records mirrored to kafka", "topic", kcfg.Topic)
	}
	return res, nil
}

func buildRouter(cfg config.Config, log *slog.Logger, registry *prometheus.Registry, res *infra, pub *publisher.Publisher) http.Handler {
	auditMetrics := httpaudit.NewMetrics(registry)
	transportOpts := []httpaudit.Option{
		httpaudit.WithLogger(log),
		httpaudit.WithMetrics(auditMetrics),
	}
	transportOpts = append(transportOpts, hostOption(cfg.Accounts.BaseURL, audit.APIAccountsServer)...)
	transportOpts = append(transportOpts, hostOption(cfg.Clients.BaseURL, audit.APIClientsServer)...)
	httpClient := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: httpaudit.NewTransport(pub, transportOpts...),
	}

	service := decision.NewService(
		adapters.NewAccountsAdapter(accounts.New(httpClient, cfg.Accounts.BaseURL, cfg.Accounts.APIKey, accounts.WithLogger(log))),
		adapters.NewClientsAdapter(clients.New(httpClient, cfg.Clients.BaseURL, cfg.Clients.APIKey, clients.WithLogger(log))),
		res.decisions,
		decision.WithLogger(log),
		decision.WithMetrics(decisionmetrics.New(registry)),
	)

	translator := handler.NewErrorTranslator(log)
	return httpapi.NewRouter(httpapi.Deps{
		Eligibility: handler.New(service, log, translator),
		Admin:       admin.New(res.audits, res.decisions, translator, log),
		Errors:      translator,
		Audit: httpaudit.NewMiddleware(pub,
			httpaudit.WithLogger(log),
			httpaudit.WithMetrics(auditMetrics),
		),
		Registry: registry,
		Health:   res.health,
		Logger:   log,
	})
}

func hostOption(baseURL string, api audit.APIName) []httpaudit.Option {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	return []httpaudit.Option{httpaudit.WithHost(u.Hostname(), api)}
}

func (r *infra) health(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (r *infra) close(log *slog.Logger) {
	if r.kafka != nil {
		r.kafka.Close()
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
}
