package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/quizforge/training-service/internal/adapters/cache"
	emailadapter "github.com/quizforge/training-service/internal/adapters/email"
	eventadapter "github.com/quizforge/training-service/internal/adapters/events"
	firestoreadapter "github.com/quizforge/training-service/internal/adapters/firestore"
	httpadapter "github.com/quizforge/training-service/internal/adapters/http"
	"github.com/quizforge/training-service/internal/adapters/security"
	"github.com/quizforge/training-service/internal/application"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	sweeper    *eventadapter.Sweeper
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	// Local runs keep credentials in a .env file; deployed runs rely on
	// real environment variables, so a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping quiz training service", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	stores, err := firestoreadapter.Connect(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("connect firestore: %w", err)
	}

	var rateLimits *cacheadapter.RedisRateLimitStore
	cleanup := func(context.Context) {
		_ = stores.Close()
	}
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rateLimits = cacheadapter.NewRedisRateLimitStore(redisClient)
		cleanup = func(context.Context) {
			_ = redisClient.Close()
			_ = stores.Close()
		}
	} else {
		logger.Warn("redis url not configured, otp issuance runs without rate limiting")
	}

	deps := application.Dependencies{
		Config: application.Config{
			OTPEnabled:            cfg.OTPEnabled,
			MediumHardGateEnabled: cfg.MediumHardGateEnabled,
			OTPTTL:                cfg.OTPTTL,
			OTPRateLimitThreshold: cfg.OTPRateLimitThreshold,
			OTPRateLimitWindow:    cfg.OTPRateLimitWindow,
			LeaderboardLimit:      cfg.LeaderboardLimit,
		},
		Progress:    firestoreadapter.NewProgressRepository(stores.Firestore),
		OTPs:        firestoreadapter.NewOTPRepository(stores.Firestore),
		Leaderboard: firestoreadapter.NewProgressRepository(stores.Firestore),
	}
	if rateLimits != nil {
		deps.RateLimits = rateLimits
	}

	if cfg.SMTPHost != "" {
		deps.Sender = emailadapter.NewSMTPSender(emailadapter.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.EmailAPIKey,
			From:     cfg.EmailFrom,
		})
	} else {
		logger.Warn("smtp host not configured, using logging email sender")
		deps.Sender = emailadapter.NewLoggingSender(logger)
	}

	switch cfg.IdentityMode {
	case "local":
		logger.Warn("using local HMAC identity verifier")
		local := security.NewJWTVerifier(cfg.LocalJWTSecret)
		deps.Verifier = local
		firebaseVerifier := security.NewFirebaseVerifier(stores.Auth)
		deps.Accounts = firebaseVerifier
	default:
		firebaseVerifier := security.NewFirebaseVerifier(stores.Auth)
		deps.Verifier = firebaseVerifier
		deps.Accounts = firebaseVerifier
	}
	deps.ResetLinks = security.NewResetLinkSender(stores.Auth, deps.Sender)

	svc := application.NewService(deps)

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler, cfg.AllowedOrigins)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		cleanup(ctx)
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	sweeper := eventadapter.NewSweeper(
		logger,
		firestoreadapter.NewOTPRepository(stores.Firestore),
		cfg.SweepInterval,
		cfg.SweepBatchSize,
	)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		sweeper:    sweeper,
		cleanupFn:  cleanup,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunSweeper(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("otp sweeper started")
	err := r.sweeper.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
