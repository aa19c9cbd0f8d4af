package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/gardenauth/internal/config"
	"github.com/dropDatabas3/gardenauth/internal/flow"
	httpserver "github.com/dropDatabas3/gardenauth/internal/http"
	"github.com/dropDatabas3/gardenauth/internal/metrics"
	"github.com/dropDatabas3/gardenauth/internal/oauth"
	"github.com/dropDatabas3/gardenauth/internal/oauth/providers"
	"github.com/dropDatabas3/gardenauth/internal/observability/logger"
	"github.com/dropDatabas3/gardenauth/internal/rate"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "gardenauth",
		Short: "Multi-provider OAuth 2.0 login gateway",
	}
	root.PersistentFlags().StringVar(&configPath, "config",
		envOr("GARDENAUTH_CONFIG", "config.yaml"), "path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "List the providers this build knows about",
		Run: func(cmd *cobra.Command, args []string) {
			names := providers.Default().Names()
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
		},
	}

	root.AddCommand(serveCmd, providersCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "gardenauth",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if err := metrics.Register(nil); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	provs, err := oauth.BuildProviders(providers.Default(), cfg.Providers)
	if err != nil {
		return fmt.Errorf("building providers: %w", err)
	}
	if len(provs) == 0 {
		log.Warn("no providers materialized; every flow will fail with unknown provider")
	}

	store, redisClient, err := buildFlowStore(cfg)
	if err != nil {
		return fmt.Errorf("building flow store: %w", err)
	}

	var limiter rate.Limiter
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			limiter = rate.NewRedis(redisClient, cfg.Cache.Redis.Prefix, cfg.RateLimit.Max, cfg.RateLimitWindow())
		} else {
			limiter = rate.NewMemory(cfg.RateLimit.Max, cfg.RateLimitWindow())
		}
		log.Info("rate limiting enabled",
			logger.Int("max", cfg.RateLimit.Max),
			logger.String("window", cfg.RateLimit.Window))
	}

	svc := oauth.NewService(provs, store)
	for _, name := range svc.ProviderNames() {
		log.Info("provider registered", logger.Provider(name))
	}

	router := httpserver.NewRouter(httpserver.NewHandler(svc), httpserver.RouterConfig{
		Session: httpserver.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		},
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:            promhttp.Handler(),
		RateLimit:          limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}

// buildFlowStore also hands back the redis client, when there is one, so
// other backends (the rate limiter) can share the connection.
func buildFlowStore(cfg *config.Config) (flow.Store, *rdb.Client, error) {
	switch cfg.Cache.Kind {
	case "redis":
		client := rdb.NewClient(&rdb.Options{
			Addr: cfg.Cache.Redis.Addr,
			DB:   cfg.Cache.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return flow.NewRedis(client, cfg.Cache.Redis.Prefix, cfg.FlowTTL()), client, nil
	default:
		return flow.NewMemory(cfg.FlowTTL()), nil, nil
	}
}
