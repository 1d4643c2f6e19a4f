package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mfakit/mfakit/modules/twofa"
	"github.com/mfakit/mfakit/pkg/config"
	"github.com/mfakit/mfakit/pkg/httpserver"
	"github.com/mfakit/mfakit/pkg/logger"
	"github.com/mfakit/mfakit/pkg/pg"
	"github.com/mfakit/mfakit/pkg/ratelimiter"
	"github.com/mfakit/mfakit/pkg/redis"
	"github.com/mfakit/mfakit/pkg/twofactor"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
		twofaCfg twofa.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&twofaCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, "twofa"),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, twofa.Migrations(), pgCfg, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	coreOpts := []twofactor.Option{
		twofactor.WithLogger(log.With(logger.Component("twofactor"))),
		twofactor.WithBackupCodeCount(twofaCfg.BackupCodeCount),
		twofactor.WithQRCodeSize(twofaCfg.QRCodeSize),
	}
	if twofaCfg.QRCodeEndpoint != "" {
		coreOpts = append(coreOpts, twofactor.WithQRCodeEndpoint(twofaCfg.QRCodeEndpoint))
	}
	core := twofactor.NewService(twofa.NewPostgresStorage(pool), twofaCfg.Issuer, coreOpts...)

	svc, err := twofa.NewService(twofaCfg, core, identityFromHeader,
		ratelimiter.NewRedisStore(rdb),
		twofa.WithLogger(log.With(logger.Component("twofa"))))
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool), redis.Healthcheck(rdb)))
	r.Mount("/2fa", twofa.Router(twofa.RouterOptions{TwoFactor: svc}))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("http server listening", slog.String("addr", httpCfg.Addr))
		}),
	)
	return srv.Run(ctx, r)
}

// identityFromHeader trusts the X-User-Id header set by an upstream auth
// proxy. Deployments with their own session layer supply a resolver wired to
// it instead of this one.
func identityFromHeader(r *http.Request) (twofa.Identity, error) {
	id, err := uuid.Parse(r.Header.Get("X-User-Id"))
	if err != nil {
		return twofa.Identity{}, twofa.ErrUnauthenticated
	}
	return twofa.Identity{ID: id, Email: r.Header.Get("X-User-Email")}, nil
}
