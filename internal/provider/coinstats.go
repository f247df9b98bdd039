package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"krypto-backend/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	CoinStatsName    = "coinstats"
	coinStatsBaseURL = "https://api.coinstats.app"
)

// CoinStatsProvider reads supply and explorer data from the CoinStats
// public API. No key is required.
type CoinStatsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewCoinStatsProvider(tracer trace.Tracer, baseURL string) *CoinStatsProvider {
	if baseURL == "" {
		baseURL = coinStatsBaseURL
	}
	return &CoinStatsProvider{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// FetchCoin resolves symbol to a CoinStats id and returns its snapshot. A
// response without a "coin" object means the id is unknown.
func (p *CoinStatsProvider) FetchCoin(ctx context.Context, symbol string) (*domain.OnChainSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "coinstats.fetch-coin")
	defer span.End()

	id := domain.CoinStatsIDFor(symbol)
	span.SetAttributes(attribute.String("symbol", symbol), attribute.String("coin_id", id))

	endpoint := p.baseURL + "/public/v1/coins/" + url.PathEscape(id) + "?currency=USD"
	body, err := doRequest(ctx, p.client, nil, CoinStatsName, endpoint, nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, domain.UnknownSymbol(CoinStatsName, symbol)
		}
		return nil, err
	}

	var payload struct {
		Coin *struct {
			Name            string   `json:"name"`
			Symbol          string   `json:"symbol"`
			Rank            int      `json:"rank"`
			Price           float64  `json:"price"`
			MarketCap       float64  `json:"marketCap"`
			Volume          float64  `json:"volume"`
			AvailableSupply float64  `json:"availableSupply"`
			TotalSupply     float64  `json:"totalSupply"`
			PriceChange1h   float64  `json:"priceChange1h"`
			PriceChange1d   float64  `json:"priceChange1d"`
			PriceChange1w   float64  `json:"priceChange1w"`
			WebsiteURL      string   `json:"websiteUrl"`
			Explorers       []string `json:"exp"`
		} `json:"coin"`
	}
	if err := decodeJSON(CoinStatsName, body, &payload); err != nil {
		return nil, err
	}
	if payload.Coin == nil {
		return nil, domain.UnknownSymbol(CoinStatsName, symbol)
	}

	c := payload.Coin
	explorers := c.Explorers
	if explorers == nil {
		explorers = []string{}
	}
	return &domain.OnChainSnapshot{
		Name:            c.Name,
		Symbol:          strings.ToUpper(c.Symbol),
		Rank:            c.Rank,
		PriceUSD:        c.Price,
		MarketCapUSD:    c.MarketCap,
		Volume24hUSD:    c.Volume,
		AvailableSupply: c.AvailableSupply,
		TotalSupply:     c.TotalSupply,
		PriceChange1h:   c.PriceChange1h,
		PriceChange1d:   c.PriceChange1d,
		PriceChange1w:   c.PriceChange1w,
		WebsiteURL:      c.WebsiteURL,
		Explorers:       explorers,
	}, nil
}
