package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"krypto-backend/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	CoinMarketCapName    = "coinmarketcap"
	coinMarketCapBaseURL = "https://pro-api.coinmarketcap.com"
)

// CoinMarketCapProvider serves quotes, global metrics and listings from the
// CoinMarketCap pro API.
type CoinMarketCapProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinMarketCapProvider creates a provider whose calls go through
// limiter. A nil limiter leaves calls unpaced.
func NewCoinMarketCapProvider(tracer trace.Tracer, apiKey, baseURL string, limiter *RateLimiter) *CoinMarketCapProvider {
	if baseURL == "" {
		baseURL = coinMarketCapBaseURL
	}
	return &CoinMarketCapProvider{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: limiter,
	}
}

type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type cmcUSDQuote struct {
	Price            float64 `json:"price"`
	Volume24h        float64 `json:"volume_24h"`
	PercentChange1h  float64 `json:"percent_change_1h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
	MarketCap        float64 `json:"market_cap"`
	LastUpdated      string  `json:"last_updated"`
}

type cmcCoin struct {
	Name    string                 `json:"name"`
	Symbol  string                 `json:"symbol"`
	CMCRank int                    `json:"cmc_rank"`
	Quote   map[string]cmcUSDQuote `json:"quote"`
}

// FetchQuote returns the latest USD quote for symbol.
func (p *CoinMarketCapProvider) FetchQuote(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "coinmarketcap.fetch-quote")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("convert", "USD")
	body, err := p.get(ctx, "/v1/cryptocurrency/quotes/latest?"+q.Encode())
	if err != nil {
		if statusCode(err) == http.StatusBadRequest && strings.Contains(strings.ToLower(p.errorMessage(body)), "symbol") {
			return nil, domain.UnknownSymbol(CoinMarketCapName, symbol)
		}
		return nil, err
	}

	var payload struct {
		Data map[string]cmcCoin `json:"data"`
	}
	if err := decodeJSON(CoinMarketCapName, body, &payload); err != nil {
		return nil, err
	}
	coin, ok := payload.Data[symbol]
	if !ok {
		return nil, domain.UnknownSymbol(CoinMarketCapName, symbol)
	}
	usd, ok := coin.Quote["USD"]
	if !ok {
		return nil, domain.Schema(CoinMarketCapName, fmt.Errorf("quote for %s has no USD conversion", symbol))
	}

	return &domain.PriceSnapshot{
		Symbol:           symbol,
		PriceUSD:         usd.Price,
		Volume24hUSD:     usd.Volume24h,
		Change24hPercent: usd.PercentChange24h,
		Change1hPercent:  usd.PercentChange1h,
		Change7dPercent:  usd.PercentChange7d,
		MarketCapUSD:     usd.MarketCap,
		LastUpdated:      parseTimestamp(usd.LastUpdated),
	}, nil
}

// FetchGlobal returns market-wide totals and dominance, rounded to 2 dp.
func (p *CoinMarketCapProvider) FetchGlobal(ctx context.Context) (*domain.GlobalSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "coinmarketcap.fetch-global")
	defer span.End()

	body, err := p.get(ctx, "/v1/global-metrics/quotes/latest")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data *struct {
			BTCDominance           float64 `json:"btc_dominance"`
			ETHDominance           float64 `json:"eth_dominance"`
			ActiveCryptocurrencies int     `json:"active_cryptocurrencies"`
			LastUpdated            string  `json:"last_updated"`
			Quote                  map[string]struct {
				TotalMarketCap float64 `json:"total_market_cap"`
				TotalVolume24h float64 `json:"total_volume_24h"`
				BTCDominance   float64 `json:"btc_dominance"`
				ETHDominance   float64 `json:"eth_dominance"`
			} `json:"quote"`
		} `json:"data"`
	}
	if err := decodeJSON(CoinMarketCapName, body, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, domain.Schema(CoinMarketCapName, fmt.Errorf("global metrics response has no data"))
	}
	usd, ok := payload.Data.Quote["USD"]
	if !ok {
		return nil, domain.Schema(CoinMarketCapName, fmt.Errorf("global metrics have no USD quote"))
	}

	btcDom := payload.Data.BTCDominance
	if btcDom == 0 {
		btcDom = usd.BTCDominance
	}
	ethDom := payload.Data.ETHDominance
	if ethDom == 0 {
		ethDom = usd.ETHDominance
	}

	return &domain.GlobalSnapshot{
		TotalMarketCapUSD:      round2(usd.TotalMarketCap),
		TotalVolume24hUSD:      round2(usd.TotalVolume24h),
		BTCDominancePercent:    round2(btcDom),
		ETHDominancePercent:    round2(ethDom),
		ActiveCryptocurrencies: payload.Data.ActiveCryptocurrencies,
		LastUpdated:            parseTimestamp(payload.Data.LastUpdated),
	}, nil
}

// FetchListings returns the top limit coins by market cap.
func (p *CoinMarketCapProvider) FetchListings(ctx context.Context, limit int) ([]domain.CoinListing, error) {
	ctx, span := p.tracer.Start(ctx, "coinmarketcap.fetch-listings")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit))

	q := url.Values{}
	q.Set("start", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("convert", "USD")
	body, err := p.get(ctx, "/v1/cryptocurrency/listings/latest?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []cmcCoin `json:"data"`
	}
	if err := decodeJSON(CoinMarketCapName, body, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, domain.Schema(CoinMarketCapName, fmt.Errorf("listings response has no data"))
	}

	out := make([]domain.CoinListing, 0, len(payload.Data))
	for i, coin := range payload.Data {
		usd := coin.Quote["USD"]
		rank := coin.CMCRank
		if rank == 0 {
			rank = i + 1
		}
		out = append(out, domain.CoinListing{
			Rank:             rank,
			Symbol:           coin.Symbol,
			Name:             coin.Name,
			PriceUSD:         usd.Price,
			MarketCapUSD:     usd.MarketCap,
			Volume24hUSD:     usd.Volume24h,
			Change24hPercent: usd.PercentChange24h,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (p *CoinMarketCapProvider) get(ctx context.Context, path string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, domain.Upstream(CoinMarketCapName, errMissingAPIKey)
	}
	return doRequest(ctx, p.client, p.limiter, CoinMarketCapName, p.baseURL+path, map[string]string{
		"X-CMC_PRO_API_KEY": p.apiKey,
	})
}

func (p *CoinMarketCapProvider) errorMessage(body []byte) string {
	var payload struct {
		Status cmcStatus `json:"status"`
	}
	if err := decodeJSON(CoinMarketCapName, body, &payload); err != nil {
		return ""
	}
	return payload.Status.ErrorMessage
}

func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
