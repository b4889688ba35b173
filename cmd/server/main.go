package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gsarma/algodojo/internal/api"
	"github.com/gsarma/algodojo/internal/auth"
	"github.com/gsarma/algodojo/internal/config"
	"github.com/gsarma/algodojo/internal/crypto"
	"github.com/gsarma/algodojo/internal/editor"
	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/leaderboard"
	"github.com/gsarma/algodojo/internal/logging"
	"github.com/gsarma/algodojo/internal/metrics"
	"github.com/gsarma/algodojo/internal/store"
	"github.com/gsarma/algodojo/internal/worker"
)

const (
	stateTTL        = 10 * time.Minute
	redisTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	var conf config.Config
	if err := conf.Load(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: conf.LogLevel, Format: conf.LogFormat})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if conf.Migrate {
		if err := store.Migrate(ctx, pool); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
	}
	db := store.NewStore(pool)

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	defer rdb.Close()

	board := leaderboard.New(db, rdb,
		leaderboard.WithSize(conf.LeaderboardSize),
		leaderboard.WithTTL(2*conf.LeaderboardInterval),
		leaderboard.WithLogger(logger),
	)
	w := worker.New(conf.LeaderboardInterval, []worker.Task{board}, worker.WithLogger(logger))

	eg, gctx := errgroup.WithContext(ctx)
	runWorker := conf.Mode == "all" || conf.Mode == "worker"
	runAPI := conf.Mode == "all" || conf.Mode == "api"
	if !runWorker && !runAPI {
		logger.Fatal("unknown mode", zap.String("mode", conf.Mode))
	}
	logger.Info("starting", zap.String("mode", conf.Mode))

	if runWorker {
		eg.Go(func() error {
			w.Start(gctx)
			return nil
		})
	}
	if runAPI {
		h, err := newHandler(&conf, db, rdb, board, logger)
		if err != nil {
			logger.Fatal("failed to initialize handler", zap.Error(err))
		}
		serve(gctx, eg, logger, "http", &http.Server{Addr: conf.HTTPAddr, Handler: newRouter(&conf, h, logger)})
		if conf.EnableMetrics {
			serve(gctx, eg, logger, "monitor", &http.Server{Addr: conf.MonitorAddr, Handler: newMonitorMux()})
		}
	}

	if err := eg.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown finished")
}

func newHandler(conf *config.Config, db *store.Store, rdb redis.UniversalClient, board *leaderboard.Board, logger *zap.Logger) (*api.Handler, error) {
	sealer, err := crypto.NewSealer(conf.StateKey)
	if err != nil {
		return nil, err
	}

	var providers []auth.Provider
	if conf.GoogleClientID != "" {
		providers = append(providers, auth.NewGoogleProvider(conf.GoogleClientID, conf.GoogleClientSecret, callbackURL(conf, "google")))
	}
	if conf.GitHubClientID != "" {
		providers = append(providers, auth.NewGitHubProvider(conf.GitHubClientID, conf.GitHubClientSecret, callbackURL(conf, "github")))
	}
	if len(providers) == 0 {
		logger.Warn("no oauth providers configured, sign-in is disabled")
	}

	svc := auth.NewService(
		auth.NewStateCodec(sealer, stateTTL),
		auth.NewTokenIssuer(conf.SessionSecret, conf.SessionIssuer, conf.SessionTTL),
		auth.NewRevocationList(rdb, redisTimeout),
		db,
		auth.WithProviders(providers...),
		auth.WithAllowedOrigins(conf.Origins()...),
		auth.WithServiceLogger(logger),
	)

	return api.NewHandler(api.Deps{
		Judge:       judge.NewJudge0(judge.EnvConfig, conf.JudgeTimeout),
		Problems:    db,
		Submissions: db,
		Profiles:    db,
		Leaderboard: board,
		Auth:        svc,
		Drafts:      editor.NewRedisDrafts(rdb, conf.DraftCapacity),
		Metrics:     metrics.NewSubmissions(prometheus.DefaultRegisterer),
		Logger:      logger,
	}), nil
}

func callbackURL(conf *config.Config, provider string) string {
	return conf.BaseURL + "/auth/" + provider + "/callback"
}

func newRouter(conf *config.Config, h *api.Handler, logger *zap.Logger) *gin.Engine {
	if conf.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(logging.RequestIDMiddleware())
	if conf.EnableMetrics {
		metrics.UseGin(r)
	}
	api.RegisterRoutes(r, h)
	return r
}

func newMonitorMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully. A
// listener error cancels ctx for the rest of the group.
func serve(ctx context.Context, eg *errgroup.Group, logger *zap.Logger, name string, srv *http.Server) {
	eg.Go(func() error {
		logger.Info("starting server", zap.String("server", name), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", zap.String("server", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
