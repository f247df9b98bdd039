package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"krypto-backend/internal/bias"
	"krypto-backend/internal/cache"
	"krypto-backend/internal/domain"
	"krypto-backend/internal/metrics"
	"krypto-backend/internal/provider"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultUpstreamTimeout = 10 * time.Second

	DefaultListingLimit = 10
	MaxListingLimit     = 100

	extendedSections = 6
)

type QuoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
	FetchGlobal(ctx context.Context) (*domain.GlobalSnapshot, error)
	FetchListings(ctx context.Context, limit int) ([]domain.CoinListing, error)
}

type OnChainSource interface {
	FetchCoin(ctx context.Context, symbol string) (*domain.OnChainSnapshot, error)
}

type DerivativesSource interface {
	FetchDerivatives(ctx context.Context, symbol string) (*domain.DerivativesSnapshot, error)
}

type SentimentSource interface {
	FetchLatest(ctx context.Context) (*domain.SentimentSnapshot, error)
}

type MacroSource interface {
	FetchMacro(ctx context.Context) (*domain.MacroSnapshot, error)
}

// Sources bundles one client per upstream.
type Sources struct {
	Quotes      QuoteSource
	OnChain     OnChainSource
	Derivatives DerivativesSource
	Sentiment   SentimentSource
	Macro       MacroSource
}

// MarketService serves snapshots through the aggregation cache and builds
// the composite views and bias report.
type MarketService struct {
	tracer  trace.Tracer
	src     Sources
	cache   cache.Cache
	scorer  *bias.Scorer
	metrics *metrics.Recorder
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

type Option func(*MarketService)

// WithUpstreamTimeout bounds every individual provider call.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(s *MarketService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithScorer(scorer *bias.Scorer) Option {
	return func(s *MarketService) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *MarketService) { s.metrics = rec }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *MarketService) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *MarketService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMarketService(tracer trace.Tracer, src Sources, c cache.Cache, opts ...Option) *MarketService {
	s := &MarketService{
		tracer:  tracer,
		src:     src,
		cache:   c,
		scorer:  bias.NewScorer(bias.DefaultThresholds()),
		log:     zerolog.Nop(),
		timeout: DefaultUpstreamTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MarketService) GetPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-price")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", sym))

	return fetchCached(ctx, s, cache.Key(cache.KindPrice, sym), provider.CoinMarketCapName,
		func(ctx context.Context) (*domain.PriceSnapshot, error) {
			return s.src.Quotes.FetchQuote(ctx, sym)
		})
}

func (s *MarketService) GetGlobal(ctx context.Context) (*domain.GlobalSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-global")
	defer span.End()

	return fetchCached(ctx, s, cache.Key(cache.KindGlobal, ""), provider.CoinMarketCapName, s.src.Quotes.FetchGlobal)
}

func (s *MarketService) GetOnChain(ctx context.Context, symbol string) (*domain.OnChainSnapshot, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-onchain")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", sym))

	return fetchCached(ctx, s, cache.Key(cache.KindOnChain, sym), provider.CoinStatsName,
		func(ctx context.Context) (*domain.OnChainSnapshot, error) {
			return s.src.OnChain.FetchCoin(ctx, sym)
		})
}

func (s *MarketService) GetDerivatives(ctx context.Context, symbol string) (*domain.DerivativesSnapshot, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-derivatives")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", sym))

	return fetchCached(ctx, s, cache.Key(cache.KindDerivatives, sym), provider.CoinglassName,
		func(ctx context.Context) (*domain.DerivativesSnapshot, error) {
			return s.src.Derivatives.FetchDerivatives(ctx, sym)
		})
}

func (s *MarketService) GetSentiment(ctx context.Context) (*domain.SentimentSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-sentiment")
	defer span.End()

	return fetchCached(ctx, s, cache.Key(cache.KindSentiment, ""), provider.FearGreedName, s.src.Sentiment.FetchLatest)
}

func (s *MarketService) GetMacro(ctx context.Context) (*domain.MacroSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-macro")
	defer span.End()

	return fetchCached(ctx, s, cache.Key(cache.KindMacro, ""), provider.YahooName, s.src.Macro.FetchMacro)
}

// GetTopCoins returns the top limit coins by market cap. limit must be in
// [1, MaxListingLimit].
func (s *MarketService) GetTopCoins(ctx context.Context, limit int) ([]domain.CoinListing, error) {
	if limit < 1 || limit > MaxListingLimit {
		return nil, domain.NewError(domain.KindBadRequest, "", fmt.Errorf("limit must be between 1 and %d", MaxListingLimit))
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-top-coins")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := fetchCached(ctx, s, cache.Key(cache.KindListing, strconv.Itoa(limit)), provider.CoinMarketCapName,
		func(ctx context.Context) (*[]domain.CoinListing, error) {
			rows, err := s.src.Quotes.FetchListings(ctx, limit)
			if err != nil {
				return nil, err
			}
			return &rows, nil
		})
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

// GetDashboard fetches price, global and on-chain data concurrently. Only an
// invalid symbol fails the call; upstream failures null out their section.
func (s *MarketService) GetDashboard(ctx context.Context, symbol string) (*domain.DashboardView, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", sym))

	view := &domain.DashboardView{Symbol: sym}
	errs := newSectionErrors()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		v, err := s.GetPrice(ctx, sym)
		view.Price = v
		errs.record(domain.SectionPrice, err)
	}()
	go func() {
		defer wg.Done()
		v, err := s.GetGlobal(ctx)
		view.Global = v
		errs.record(domain.SectionGlobal, err)
	}()
	go func() {
		defer wg.Done()
		v, err := s.GetOnChain(ctx, sym)
		view.OnChain = v
		errs.record(domain.SectionOnChain, err)
	}()
	wg.Wait()

	view.Errors = errs.result()
	s.logDegraded(sym, "dashboard", view.Errors)
	return view, nil
}

// GetExtended serves the six-section view from cache, or fans out to every
// provider concurrently and caches the result.
func (s *MarketService) GetExtended(ctx context.Context, symbol string) (*domain.ExtendedView, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.get-extended")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", sym))

	key := cache.Key(cache.KindExtended, sym)
	if view, ok := cache.GetJSON[domain.ExtendedView](ctx, s.cache, key); ok {
		s.metrics.ObserveCache(true)
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return view, nil
	}
	s.metrics.ObserveCache(false)

	view := s.buildExtended(ctx, sym)
	s.logDegraded(sym, "extended", view.Errors)
	s.storeExtended(ctx, key, view)
	return view, nil
}

// RefreshExtended rebuilds and caches the extended view regardless of what
// is cached. The individual sections are still read through the cache.
func (s *MarketService) RefreshExtended(ctx context.Context, symbol string) (*domain.ExtendedView, error) {
	sym, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "market-service.refresh-extended")
	defer span.End()

	view := s.buildExtended(ctx, sym)
	s.storeExtended(ctx, cache.Key(cache.KindExtended, sym), view)
	return view, nil
}

// storeExtended caches view unless every section failed or ctx ended while
// the sections were being fetched.
func (s *MarketService) storeExtended(ctx context.Context, key string, view *domain.ExtendedView) {
	if ctx.Err() != nil || len(view.Errors) >= extendedSections {
		return
	}
	cache.PutJSON(ctx, s.cache, key, view)
}

func (s *MarketService) buildExtended(ctx context.Context, sym string) *domain.ExtendedView {
	view := &domain.ExtendedView{Symbol: sym}
	errs := newSectionErrors()

	var wg sync.WaitGroup
	run := func(section string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs.record(section, fn())
		}()
	}

	run(domain.SectionPrice, func() (err error) {
		view.Price, err = s.GetPrice(ctx, sym)
		return err
	})
	run(domain.SectionGlobal, func() (err error) {
		view.Global, err = s.GetGlobal(ctx)
		return err
	})
	run(domain.SectionOnChain, func() (err error) {
		view.OnChain, err = s.GetOnChain(ctx, sym)
		return err
	})
	run(domain.SectionDerivatives, func() (err error) {
		view.Derivatives, err = s.GetDerivatives(ctx, sym)
		return err
	})
	run(domain.SectionSentiment, func() (err error) {
		view.Sentiment, err = s.GetSentiment(ctx)
		return err
	})
	run(domain.SectionMacro, func() (err error) {
		view.Macro, err = s.GetMacro(ctx)
		return err
	})
	wg.Wait()

	view.Errors = errs.result()
	view.GeneratedAt = s.now().UTC()
	return view
}

// GetBias scores the extended view. Missing signals are replaced with
// neutral values and listed in the report, so the call succeeds even when
// every upstream is down.
func (s *MarketService) GetBias(ctx context.Context, symbol string) (*domain.BiasReport, error) {
	view, err := s.GetExtended(ctx, symbol)
	if err != nil {
		return nil, err
	}
	_, span := s.tracer.Start(ctx, "market-service.get-bias")
	defer span.End()

	in, fallbacks := bias.Resolve(signalsFrom(view))
	res := s.scorer.Score(in)
	span.SetAttributes(attribute.Float64("score", res.Score), attribute.String("label", string(res.Label)))

	return &domain.BiasReport{
		Symbol: view.Symbol,
		Score:  res.Score,
		Label:  string(res.Label),
		Inputs: domain.BiasInputs{
			FundingRate:        in.FundingRate,
			OIChange24hPercent: in.OIChange,
			FearGreed:          in.FearGreed,
			DXY:                in.DXY,
			VIX:                in.VIX,
			PriceChange24h:     in.PriceChange24h,
		},
		Fallbacks: fallbacks,
	}, nil
}

func signalsFrom(view *domain.ExtendedView) bias.Signals {
	var sig bias.Signals
	if d := view.Derivatives; d != nil {
		sig.FundingRate = ptr(d.FundingRate)
		sig.OIChange = ptr(d.OIChange24hPercent)
	}
	if st := view.Sentiment; st != nil {
		sig.FearGreed = ptr(float64(st.Value))
	}
	if m := view.Macro; m != nil {
		if m.DXY != nil {
			sig.DXY = ptr(m.DXY.Price)
		}
		if m.VIX != nil {
			sig.VIX = ptr(m.VIX.Price)
		}
	}
	if p := view.Price; p != nil {
		sig.PriceChange24h = ptr(p.Change24hPercent)
	}
	return sig
}

func ptr(v float64) *float64 { return &v }

// fetchCached returns the cached value under key or calls fetch under the
// upstream timeout and caches a successful result.
func fetchCached[T any](ctx context.Context, s *MarketService, key, providerName string, fetch func(context.Context) (*T, error)) (*T, error) {
	if v, ok := cache.GetJSON[T](ctx, s.cache, key); ok {
		s.metrics.ObserveCache(true)
		return v, nil
	}
	s.metrics.ObserveCache(false)

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	v, err := fetch(fetchCtx)
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
	}
	s.metrics.ObserveUpstream(providerName, outcome, time.Since(start))
	if err != nil {
		return nil, err
	}

	cache.PutJSON(ctx, s.cache, key, v)
	return v, nil
}

func (s *MarketService) logDegraded(symbol, view string, errs map[string]string) {
	for section, msg := range errs {
		s.log.Warn().
			Str("symbol", symbol).
			Str("view", view).
			Str("section", section).
			Str("error", msg).
			Msg("section unavailable")
	}
}

type sectionErrors struct {
	mu   sync.Mutex
	errs map[string]string
}

func newSectionErrors() *sectionErrors {
	return &sectionErrors{errs: make(map[string]string)}
}

func (e *sectionErrors) record(section string, err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.errs[section] = err.Error()
	e.mu.Unlock()
}

func (e *sectionErrors) result() map[string]string {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs
}
