package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	audit "quizdesk/backend/internal/audit"
	auditrepo "quizdesk/backend/internal/audit/repository"
	authhandler "quizdesk/backend/internal/auth/handler"
	authservice "quizdesk/backend/internal/auth/service"
	cataloghandler "quizdesk/backend/internal/catalog/handler"
	catalogrepo "quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/config"
	"quizdesk/backend/internal/db"
	"quizdesk/backend/internal/events"
	"quizdesk/backend/internal/logging"
	moderationhandler "quizdesk/backend/internal/moderation/handler"
	moderationrepo "quizdesk/backend/internal/moderation/repository"
	"quizdesk/backend/internal/ratelimit"
	"quizdesk/backend/internal/security"
	"quizdesk/backend/internal/server"
	sessionrepo "quizdesk/backend/internal/session/repository"
	sessionservice "quizdesk/backend/internal/session/service"
	"quizdesk/backend/internal/telemetry/otel"
	userrepo "quizdesk/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "quizdesk-backend", false)
	if err != nil {
		logger.Fatal("telemetry", zap.Error(err))
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer pool.Close()

	signer, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		logger.Fatal("jwt private key", zap.Error(err))
	}
	pub, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		logger.Fatal("jwt public key", zap.Error(err))
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL(), cfg.RefreshTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	producer := events.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.EventsKafkaTopic)
	defer func() { _ = producer.Close() }()

	sessions := sessionrepo.NewPostgresRepository(pool)
	users := userrepo.NewPostgresRepository(pool)
	audits := audit.NewLogger(auditrepo.NewPostgresRepository(pool), logger)

	issuer := sessionservice.NewIssuer(sessions, tokens, producer, logger)
	auth := authservice.NewAuthService(users, hasher, tokens, issuer, audits, logger)

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.LoginRateLimit, cfg.LoginWindow(), logger)
	}

	router := server.NewRouter(server.Deps{
		Auth: authhandler.NewHandler(auth, authhandler.CookieSettings{
			Domain:     cfg.CookieDomain,
			Secure:     cfg.CookieSecure,
			AccessTTL:  cfg.AccessTTL(),
			RefreshTTL: cfg.RefreshTTL(),
		}, logger),
		Catalog: cataloghandler.NewHandler(
			catalogrepo.NewPostgresQuestionRepository(pool),
			catalogrepo.NewPostgresCategoryRepository(pool),
			catalogrepo.NewPostgresAnnouncementRepository(pool),
			logger),
		Moderation: moderationhandler.NewHandler(
			moderationrepo.NewPostgresProposalRepository(pool),
			moderationrepo.NewPostgresReportRepository(pool),
			catalogrepo.NewPostgresQuestionRepository(pool),
			logger),
		Tokens:       tokens,
		Sessions:     sessions,
		LoginLimiter: limiter,
		Logger:       logger,
	})

	srv := server.New(cfg.HTTPAddr, router, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("serve", zap.Error(err))
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("http server stopped")
}
