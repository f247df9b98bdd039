package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"krypto-backend/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	CoinglassName    = "coinglass"
	coinglassBaseURL = "https://open-api-v4.coinglass.com"
	coinglassOKCode  = "0"
)

// CoinglassProvider aggregates funding and open interest across exchanges.
type CoinglassProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinglassProvider creates a provider. Each derivatives snapshot costs
// two calls against limiter.
func NewCoinglassProvider(tracer trace.Tracer, apiKey, baseURL string, limiter *RateLimiter) *CoinglassProvider {
	if baseURL == "" {
		baseURL = coinglassBaseURL
	}
	return &CoinglassProvider{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: limiter,
	}
}

type coinglassEnvelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// FetchDerivatives returns the mean stablecoin-margined funding rate and the
// cross-exchange open interest for symbol.
func (p *CoinglassProvider) FetchDerivatives(ctx context.Context, symbol string) (*domain.DerivativesSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "coinglass.fetch-derivatives")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	funding, venues, err := p.fetchFunding(ctx, symbol)
	if err != nil {
		return nil, err
	}
	oiUSD, oiChange, err := p.fetchOpenInterest(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &domain.DerivativesSnapshot{
		Symbol:             symbol,
		FundingRate:        funding,
		FundingExchanges:   venues,
		OpenInterestUSD:    oiUSD,
		OIChange24hPercent: oiChange,
	}, nil
}

func (p *CoinglassProvider) fetchFunding(ctx context.Context, symbol string) (float64, int, error) {
	data, err := p.get(ctx, "/api/futures/funding-rate/exchange-list", symbol)
	if err != nil {
		return 0, 0, err
	}

	var rows []struct {
		Symbol               string `json:"symbol"`
		StablecoinMarginList []struct {
			Exchange    string `json:"exchange"`
			FundingRate any    `json:"funding_rate"`
		} `json:"stablecoin_margin_list"`
	}
	if err := decodeJSON(CoinglassName, data, &rows); err != nil {
		return 0, 0, err
	}

	for _, row := range rows {
		if !strings.EqualFold(row.Symbol, symbol) {
			continue
		}
		var sum float64
		n := 0
		for _, venue := range row.StablecoinMarginList {
			if venue.FundingRate == nil {
				continue
			}
			sum += asFloat(venue.FundingRate)
			n++
		}
		if n == 0 {
			return 0, 0, domain.Schema(CoinglassName, fmt.Errorf("no funding venues for %s", symbol))
		}
		return sum / float64(n), n, nil
	}
	return 0, 0, domain.UnknownSymbol(CoinglassName, symbol)
}

func (p *CoinglassProvider) fetchOpenInterest(ctx context.Context, symbol string) (float64, float64, error) {
	data, err := p.get(ctx, "/api/futures/open-interest/exchange-list", symbol)
	if err != nil {
		return 0, 0, err
	}

	var rows []struct {
		Exchange       string `json:"exchange"`
		OpenInterestUS any    `json:"open_interest_usd"`
		Change24h      any    `json:"open_interest_change_percent_24h"`
	}
	if err := decodeJSON(CoinglassName, data, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, domain.UnknownSymbol(CoinglassName, symbol)
	}

	for _, row := range rows {
		if strings.EqualFold(row.Exchange, "All") {
			return asFloat(row.OpenInterestUS), asFloat(row.Change24h), nil
		}
	}
	return 0, 0, domain.Schema(CoinglassName, fmt.Errorf("open interest for %s has no aggregate row", symbol))
}

// get unwraps the {code,msg,data} envelope Coinglass puts around every
// response and returns data.
func (p *CoinglassProvider) get(ctx context.Context, path, symbol string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, domain.Upstream(CoinglassName, errMissingAPIKey)
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	body, err := doRequest(ctx, p.client, p.limiter, CoinglassName, p.baseURL+path+"?"+q.Encode(), map[string]string{
		"CG-API-KEY": p.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var env coinglassEnvelope
	if err := decodeJSON(CoinglassName, body, &env); err != nil {
		return nil, err
	}
	if env.Code != coinglassOKCode {
		return nil, domain.Upstream(CoinglassName, fmt.Errorf("code %s: %s", env.Code, env.Msg))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, domain.UnknownSymbol(CoinglassName, symbol)
	}
	return env.Data, nil
}
