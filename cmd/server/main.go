package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krypto-backend/internal/bias"
	"krypto-backend/internal/cache"
	"krypto-backend/internal/config"
	"krypto-backend/internal/handler"
	"krypto-backend/internal/job"
	"krypto-backend/internal/metrics"
	"krypto-backend/internal/provider"
	"krypto-backend/internal/service"
	"krypto-backend/pkg/logger"
	"krypto-backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "krypto-backend/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logger.New
	initTracerFunc         = tracing.InitTracer
	newRedisClientFunc     = cache.NewRedisClient
	newSourcesFunc         = newSources
	newRegistryFunc        = prometheus.NewRegistry
	startWarmerFunc        = func(w *job.CacheWarmer, ctx context.Context) { go w.Start(ctx) }
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Krypto Backend API
// @version         1.0
// @description     Aggregates crypto market data and scores a directional market bias.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	log := newLoggerFunc(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	reg := newRegistryFunc()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	store, closeStore := newCache(ctx, cfg, log)
	defer closeStore()

	market := service.NewMarketService(tracer, newSourcesFunc(tracer, cfg, recorder), store,
		service.WithUpstreamTimeout(cfg.UpstreamTimeout()),
		service.WithScorer(bias.NewScorer(cfg.Bias)),
		service.WithMetrics(recorder),
		service.WithLogger(log.With().Str("component", "market-service").Logger()),
	)

	warmer := job.NewCacheWarmer(tracer, market, cfg.WarmSymbols, cfg.WarmIntervalSecs, log)
	if warmer.Enabled() {
		startWarmerFunc(warmer, ctx)
	}

	h := handler.New(tracer, market, log, handler.WithCacheBackend(backendName(store)))

	r := newRouterFunc()
	r.Use(handler.Recovery(log), handler.RequestLogger(log))
	r.Use(otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exiting")
}

// newCache returns the configured cache backend. An unreachable Redis falls
// back to the in-process store.
func newCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Cache, func()) {
	memory := func() (cache.Cache, func()) {
		return cache.NewMemoryStore(cache.WithMaxEntries(cfg.CacheMaxEntries)), func() {}
	}
	if cfg.CacheBackend != "redis" {
		return memory()
	}

	client, err := newRedisClientFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		return memory()
	}
	log.Info().Str("addr", cfg.RedisURL).Msg("using redis cache")
	return cache.NewRedisStore(client, "krypto:", log), func() { _ = client.Close() }
}

func backendName(c cache.Cache) string {
	if _, ok := c.(*cache.RedisStore); ok {
		return "redis"
	}
	return "memory"
}

// newSources builds one client per upstream. The keyed APIs are paced per
// plan and report their limiter waits to rec.
func newSources(tracer trace.Tracer, cfg *config.Config, rec *metrics.Recorder) service.Sources {
	cmcLimiter := provider.NewRateLimiter(provider.CoinMarketCapName, cfg.CMCCallsPerMin, provider.WithWaitObserver(rec))
	coinglassLimiter := provider.NewRateLimiter(provider.CoinglassName, cfg.CoinglassCallsPerMin, provider.WithWaitObserver(rec))
	return service.Sources{
		Quotes:      provider.NewCoinMarketCapProvider(tracer, cfg.CMCKey, cfg.CMCBaseURL, cmcLimiter),
		OnChain:     provider.NewCoinStatsProvider(tracer, cfg.CoinStatsBaseURL),
		Derivatives: provider.NewCoinglassProvider(tracer, cfg.CoinglassKey, cfg.CoinglassBaseURL, coinglassLimiter),
		Sentiment:   provider.NewFearGreedProvider(tracer, cfg.FearGreedBaseURL),
		Macro:       provider.NewYahooFinanceProvider(tracer, cfg.YahooBaseURL),
	}
}
