// Package verifier implements app.Runner for the payout verifier process.
package verifier

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
	"github.com/chainsafe/usdt-payout-verifier/pkg/auth"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain/adapters"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/notify"
	"github.com/chainsafe/usdt-payout-verifier/pkg/pgutil"
	"github.com/chainsafe/usdt-payout-verifier/pkg/ratelimit"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
	transferservice "github.com/chainsafe/usdt-payout-verifier/pkg/transfer/service"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transferstore"
	userservice "github.com/chainsafe/usdt-payout-verifier/pkg/user/service"
	"github.com/chainsafe/usdt-payout-verifier/pkg/userstore"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/cache"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/policy"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/retry"
	verificationservice "github.com/chainsafe/usdt-payout-verifier/pkg/verification/service"
)

// Server holds cfg to init the verifier server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new verifier Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run wires the verification engine and the transfer workflow behind the HTTP API.
// It blocks until an OS shutdown signal is received or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("verifier config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting USDT payout verifier",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	registry, err := network.NewRegistry(cfg.Networks)
	if err != nil {
		return fmt.Errorf("build network registry: %w", err)
	}

	chainAdapters, closeAdapters, err := adapters.Build(ctx, registry, ratelimit.FromRegistry(registry), logger)
	if err != nil {
		return fmt.Errorf("build network adapters: %w", err)
	}
	defer closeAdapters()

	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	verifier := NewVerificationService(cfg.Verifier, registry, chainAdapters, logger)

	users := userstore.NewStore(db)

	transfers := transferservice.NewService(
		transferstore.NewStore(db),
		users,
		registry,
		verifier,
		newNotifier(cfg.Notify, logger),
		transfer.NewFeeSchedule(cfg.Transfers),
		cfg.Transfers.ExchangeRates,
		logger,
		transferservice.WithAmountTolerance(cfg.Verifier.AmountTolerance),
	)

	router := s.setupRouter(
		db,
		verifier,
		transferservice.NewLog(transfers, logger),
		userservice.NewLog(userservice.NewService(users, logger), logger),
		logger,
	)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

// NewVerificationService assembles the cache, policy and retry orchestrator into
// the logged verification service.
func NewVerificationService(
	cfg config.VerifierConfig,
	registry *network.Registry,
	chainAdapters map[network.Network]chain.Adapter,
	logger *zap.Logger,
) verificationservice.Service {
	svc := verificationservice.NewService(
		registry,
		chainAdapters,
		cache.New(cfg.CacheTTL),
		policy.New(registry, cfg.AmountTolerance, logger),
		retry.New(cfg.Retry, logger),
		logger,
	)
	return verificationservice.NewLog(svc, logger)
}

func newNotifier(cfg config.NotifyConfig, logger *zap.Logger) notify.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookToken, cfg.WebhookTimeout))
		logger.Info("Operator webhook enabled", zap.String("url", cfg.WebhookURL))
	}
	return notifiers
}

func (s *Server) setupRouter(
	db *bun.DB,
	verifier verificationservice.Service,
	transfers transferservice.Service,
	users userservice.Service,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Warn("Readiness check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	r.Handle("/metrics", promhttp.Handler())

	var operatorAuth func(http.Handler) http.Handler
	if s.cfg.Auth.JWTSecret != "" {
		operatorAuth = auth.OperatorMiddleware(auth.NewJWTValidator(s.cfg.Auth.JWTSecret, s.cfg.Auth.Issuer), logger)
	}

	r.Route("/api/v1", func(r chi.Router) {
		verificationservice.RegisterRoutes(r, verifier, logger)
		transferservice.RegisterRoutes(r, transfers, operatorAuth, logger)
		userservice.RegisterRoutes(r, users, operatorAuth, logger)
	})

	return r
}
