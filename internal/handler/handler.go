package handler

import (
	"context"

	"krypto-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// MarketData is the read side of the market service used by the routes.
type MarketData interface {
	GetPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
	GetGlobal(ctx context.Context) (*domain.GlobalSnapshot, error)
	GetOnChain(ctx context.Context, symbol string) (*domain.OnChainSnapshot, error)
	GetDerivatives(ctx context.Context, symbol string) (*domain.DerivativesSnapshot, error)
	GetSentiment(ctx context.Context) (*domain.SentimentSnapshot, error)
	GetMacro(ctx context.Context) (*domain.MacroSnapshot, error)
	GetTopCoins(ctx context.Context, limit int) ([]domain.CoinListing, error)
	GetDashboard(ctx context.Context, symbol string) (*domain.DashboardView, error)
	GetExtended(ctx context.Context, symbol string) (*domain.ExtendedView, error)
	GetBias(ctx context.Context, symbol string) (*domain.BiasReport, error)
}

type Handler struct {
	tracer       trace.Tracer
	market       MarketData
	log          zerolog.Logger
	cacheBackend string
}

type Option func(*Handler)

// WithCacheBackend names the cache backend reported by /health.
func WithCacheBackend(name string) Option {
	return func(h *Handler) { h.cacheBackend = name }
}

func New(tracer trace.Tracer, market MarketData, log zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		tracer:       tracer,
		market:       market,
		log:          log,
		cacheBackend: "memory",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/price/:symbol", h.GetPrice)
	api.GET("/global", h.GetGlobal)
	api.GET("/onchain/:symbol", h.GetOnChain)
	api.GET("/derivatives/:symbol", h.GetDerivatives)
	api.GET("/sentiment", h.GetSentiment)
	api.GET("/macro", h.GetMacro)
	api.GET("/multi", h.GetMulti)
	api.GET("/dashboard/:symbol", h.GetDashboard)
	api.GET("/dashboard/extended/:symbol", h.GetExtended)
	api.GET("/bias/:symbol", h.GetBias)
}
