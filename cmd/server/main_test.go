package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"krypto-backend/internal/bias"
	"krypto-backend/internal/cache"
	"krypto-backend/internal/config"
	"krypto-backend/internal/job"
	"krypto-backend/internal/metrics"
	"krypto-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var warmed bool
	restore := stubServerDeps(&warmed)
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
	if !warmed {
		t.Fatal("expected cache warmer to start for configured symbols")
	}
}

func TestNewCacheSelectsBackend(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{CacheBackend: "memory", CacheMaxEntries: 8}

	store, closeFn := newCache(ctx, cfg, zerolog.Nop())
	defer closeFn()
	if _, ok := store.(*cache.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
	if name := backendName(store); name != "memory" {
		t.Fatalf("expected memory backend name, got %s", name)
	}

	orig := newRedisClientFunc
	defer func() { newRedisClientFunc = orig }()

	cfg.CacheBackend = "redis"
	newRedisClientFunc = func(context.Context, string) (*redis.Client, error) {
		return nil, errors.New("connection refused")
	}
	store, closeFn = newCache(ctx, cfg, zerolog.Nop())
	closeFn()
	if _, ok := store.(*cache.MemoryStore); !ok {
		t.Fatalf("expected memory fallback, got %T", store)
	}

	newRedisClientFunc = func(_ context.Context, addr string) (*redis.Client, error) {
		return redis.NewClient(&redis.Options{Addr: addr}), nil
	}
	cfg.RedisURL = "localhost:6399"
	store, closeFn = newCache(ctx, cfg, zerolog.Nop())
	closeFn()
	if _, ok := store.(*cache.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}
	if name := backendName(store); name != "redis" {
		t.Fatalf("expected redis backend name, got %s", name)
	}
}

func stubServerDeps(warmed *bool) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origNewSources := newSourcesFunc
	origStartWarmer := startWarmerFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			HTTPAddr:            ":0",
			CacheBackend:        "memory",
			CacheMaxEntries:     16,
			UpstreamTimeoutSecs: 1,
			LogLevel:            "error",
			LogFormat:           "json",
			WarmSymbols:         []string{"BTC"},
			WarmIntervalSecs:    60,
			Bias:                bias.DefaultThresholds(),
		}
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newSourcesFunc = func(trace.Tracer, *config.Config, *metrics.Recorder) service.Sources {
		s := stubSources{}
		return service.Sources{Quotes: s, OnChain: s, Derivatives: s, Sentiment: s, Macro: s}
	}
	startWarmerFunc = func(*job.CacheWarmer, context.Context) { *warmed = true }
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	// The server stub runs until shutdown, and shutdown waits for it to have
	// started, so main never returns while the server goroutine is pending.
	started := make(chan struct{})
	stopped := make(chan struct{})
	startHTTPServerFunc = func(*http.Server) error {
		close(started)
		<-stopped
		return http.ErrServerClosed
	}
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error {
		<-started
		close(stopped)
		return nil
	}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		newSourcesFunc = origNewSources
		startWarmerFunc = origStartWarmer
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
