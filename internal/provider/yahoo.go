package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"krypto-backend/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	YahooName    = "yahoo"
	yahooBaseURL = "https://query1.finance.yahoo.com"

	// Yahoo rejects requests without a browser-like agent.
	yahooUserAgent = "Mozilla/5.0 (compatible; krypto-backend/1.0)"
)

// Yahoo tickers for the macro indices.
const (
	TickerDXY    = "DX-Y.NYB"
	TickerNasdaq = "^IXIC"
	TickerGold   = "GC=F"
	TickerVIX    = "^VIX"
)

// YahooFinanceProvider reads index quotes from the v8 chart endpoint.
type YahooFinanceProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewYahooFinanceProvider(tracer trace.Tracer, baseURL string) *YahooFinanceProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooFinanceProvider{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// FetchMacro fetches the four indices concurrently. Individual failures
// leave that quote nil; an error is returned only when all of them fail.
func (p *YahooFinanceProvider) FetchMacro(ctx context.Context) (*domain.MacroSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-macro")
	defer span.End()

	tickers := []string{TickerDXY, TickerNasdaq, TickerGold, TickerVIX}
	quotes := make([]*domain.MacroQuote, len(tickers))
	errs := make([]error, len(tickers))

	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			quotes[i], errs[i] = p.FetchQuote(ctx, ticker)
		}(i, ticker)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(tickers) {
		return nil, errors.Join(errs...)
	}

	return &domain.MacroSnapshot{
		DXY:    quotes[0],
		Nasdaq: quotes[1],
		Gold:   quotes[2],
		VIX:    quotes[3],
	}, nil
}

// FetchQuote returns the last price of ticker and its change against the
// previous close.
func (p *YahooFinanceProvider) FetchQuote(ctx context.Context, ticker string) (*domain.MacroQuote, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-quote")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	endpoint := p.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker) + "?interval=1d&range=5d"
	body, err := doRequest(ctx, p.client, nil, YahooName, endpoint, map[string]string{
		"User-Agent": yahooUserAgent,
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, domain.UnknownSymbol(YahooName, ticker)
		}
		return nil, err
	}

	var payload struct {
		Chart struct {
			Result []struct {
				Meta struct {
					Symbol             string  `json:"symbol"`
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					ChartPreviousClose float64 `json:"chartPreviousClose"`
					PreviousClose      float64 `json:"previousClose"`
				} `json:"meta"`
			} `json:"result"`
			Error *struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := decodeJSON(YahooName, body, &payload); err != nil {
		return nil, err
	}
	if e := payload.Chart.Error; e != nil {
		return nil, domain.Upstream(YahooName, fmt.Errorf("%s: %s", e.Code, e.Description))
	}
	if len(payload.Chart.Result) == 0 {
		return nil, domain.Schema(YahooName, fmt.Errorf("chart for %s has no result", ticker))
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, domain.Schema(YahooName, fmt.Errorf("chart for %s has no market price", ticker))
	}
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	change := 0.0
	if prev != 0 {
		change = round2((meta.RegularMarketPrice - prev) / prev * 100)
	}

	return &domain.MacroQuote{
		Symbol:        ticker,
		Price:         round2(meta.RegularMarketPrice),
		ChangePercent: change,
	}, nil
}
