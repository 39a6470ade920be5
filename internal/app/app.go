package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/shopbot/core/bootstrap"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/metrics"
	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/router"
	"github.com/m3rciful/shopbot/internal/bot"
	"github.com/m3rciful/shopbot/internal/i18n"
	"github.com/m3rciful/shopbot/internal/language"
	"github.com/m3rciful/shopbot/internal/onboarding"
	"github.com/m3rciful/shopbot/internal/profile"
)

// App owns the long-lived resources of the bot.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	langs    *language.Registry
	catalog  *i18n.Catalog
	profiles *profile.PostgresStore
	handlers *bot.Handlers
}

// Bootstrap initializes logging, storage and the onboarding flow.
func Bootstrap(cfg *Config) (*App, error) {
	return bootstrapWith(cfg, bootstrap.Options{})
}

func bootstrapWith(cfg *Config, infra bootstrap.Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	infra.Config = &cfg.Config
	infra.Database = cfg.Database
	infra.Cache = cfg.Cache
	res, err := bootstrap.Run(infra)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, infra: res}

	if err := a.init(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	langs, err := a.cfg.Registry()
	if err != nil {
		return fmt.Errorf("app: languages: %w", err)
	}
	a.langs = langs

	catalog, err := i18n.Load(a.cfg.Locales.Dir, langs)
	if err != nil {
		return fmt.Errorf("app: locales: %w", err)
	}
	a.catalog = catalog

	a.profiles = profile.NewPostgresStore(a.infra.DB, langs)
	var store profile.Store = a.profiles
	if a.infra.Redis != nil {
		store = profile.NewCachedStore(a.profiles, profile.NewRedisCache(a.infra.Redis, a.cfg.Cache.TTL()))
	}

	ctrl := onboarding.NewController(store, langs, catalog)
	a.handlers = bot.NewHandlers(ctrl, catalog, langs, store)

	logger.Info(context.Background(), logger.ComponentApp, "bootstrap",
		slog.Int("languages", len(langs.Entries())),
		slog.Bool("cache", a.infra.Redis != nil),
	)
	return nil
}

// TelegramRunOptions registers handlers and returns the bot wiring.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	if err := a.handlers.Register(reg); err != nil {
		return tg.RunOptions{}, err
	}

	mws := tg.DefaultMiddlewares(&a.cfg.Config, tg.ChainOptions{
		Extra: []tg.Middleware{{Name: "provision", Use: bot.ProvisionMiddleware(a.profiles)}},
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{AdminID: a.cfg.Telegram.AdminID})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)

	metricsCfg := a.cfg.Metrics
	return tg.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			go func() {
				err := metrics.Serve(ctx, metrics.Options{Listen: metricsCfg.Listen, Path: metricsCfg.Path})
				if err != nil {
					logger.Error(ctx, logger.ComponentMetrics, "serve",
						slog.String("err", err.Error()),
					)
				}
			}()
			return nil
		},
	}, nil
}

// Close releases Redis and database connections.
func (a *App) Close() error {
	if a.infra == nil {
		return nil
	}
	return a.infra.Close()
}
