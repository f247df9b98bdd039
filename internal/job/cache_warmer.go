package job

import (
	"context"
	"time"

	"krypto-backend/internal/domain"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ExtendedRefresher rebuilds and caches the extended view of a symbol.
type ExtendedRefresher interface {
	RefreshExtended(ctx context.Context, symbol string) (*domain.ExtendedView, error)
}

// CacheWarmer periodically refreshes the extended view of a fixed symbol
// list so requests for those symbols are served from cache.
type CacheWarmer struct {
	tracer   trace.Tracer
	market   ExtendedRefresher
	symbols  []string
	interval time.Duration
	log      zerolog.Logger
}

func NewCacheWarmer(tracer trace.Tracer, market ExtendedRefresher, symbols []string, intervalSecs int, log zerolog.Logger) *CacheWarmer {
	if intervalSecs <= 0 {
		intervalSecs = 60
	}
	return &CacheWarmer{
		tracer:   tracer,
		market:   market,
		symbols:  symbols,
		interval: time.Duration(intervalSecs) * time.Second,
		log:      log.With().Str("component", "cache-warmer").Logger(),
	}
}

// Enabled reports whether there is anything to warm.
func (w *CacheWarmer) Enabled() bool {
	return len(w.symbols) > 0
}

// Start warms immediately and then on every tick. Blocks until ctx is
// cancelled.
func (w *CacheWarmer) Start(ctx context.Context) {
	if !w.Enabled() {
		return
	}
	w.log.Info().Strs("symbols", w.symbols).Dur("interval", w.interval).Msg("cache warmer starting")

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("cache warmer stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmer) warm(ctx context.Context) {
	ctx, span := w.tracer.Start(ctx, "job.cache-warmer.tick")
	defer span.End()
	span.SetAttributes(attribute.Int("symbols", len(w.symbols)))

	for _, symbol := range w.symbols {
		if ctx.Err() != nil {
			return
		}
		view, err := w.market.RefreshExtended(ctx, symbol)
		if err != nil {
			w.log.Warn().Err(err).Str("symbol", symbol).Msg("warm failed")
			continue
		}
		if len(view.Errors) > 0 {
			w.log.Warn().Str("symbol", symbol).Int("failed_sections", len(view.Errors)).Msg("warmed with degraded sections")
		}
	}
}
