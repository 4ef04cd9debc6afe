// Command tenant-registry serves the AppStats and AppUser REST API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/config"
	"github.com/kaizenmobile/tenant-registry/internal/metrics"
	"github.com/kaizenmobile/tenant-registry/internal/migrate"
	"github.com/kaizenmobile/tenant-registry/internal/repository/postgres"
	httpserver "github.com/kaizenmobile/tenant-registry/internal/server/http"
	"github.com/kaizenmobile/tenant-registry/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves HTTP until a signal arrives.
func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, found, err := config.Load(*configDir)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	logger := newLogger(cfg.Log.Development)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("configFile", found),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN, logger); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.Database.DSN, postgres.Options{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	statsRepo := postgres.NewAppStatsRepo(db)
	appUserRepo := postgres.NewAppUserRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Services
	svcLog := logger.Named("service")
	statsSvc := service.NewAppStatsService(statsRepo, svcLog)
	statsQuery := service.NewAppStatsQueryService(statsRepo, svcLog)
	appUserSvc := service.NewAppUserService(appUserRepo, userRepo, svcLog)
	appUserQuery := service.NewAppUserQueryService(appUserRepo, svcLog)

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpserver.NewRouter(httpserver.Deps{
		AppName:        cfg.App.Name,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AppStats:       statsSvc,
		AppStatsQuery:  statsQuery,
		AppUsers:       appUserSvc,
		AppUsersQuery:  appUserQuery,
		DB:             db,
		Metrics:        metrics.New("tenant_registry"),
		Log:            logger.Named("http"),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
