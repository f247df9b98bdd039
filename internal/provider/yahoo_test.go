package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"krypto-backend/internal/domain"
)

func chartBody(symbol string, price, prev float64) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"symbol":%q,"regularMarketPrice":%v,"chartPreviousClose":%v}}],"error":null}}`,
		symbol, price, prev)
}

func TestYahooFetchQuote(t *testing.T) {
	t.Parallel()

	p := NewYahooFinanceProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v8/finance/chart/DX-Y.NYB" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.Header.Get("User-Agent") == "" {
			t.Fatal("missing user agent")
		}
		return jsonResponse(http.StatusOK, chartBody("DX-Y.NYB", 104.5, 104)), nil
	})

	q, err := p.FetchQuote(context.Background(), TickerDXY)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 104.5 || q.ChangePercent != 0.48 || q.Symbol != TickerDXY {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestYahooFetchMacroPartial(t *testing.T) {
	t.Parallel()

	p := NewYahooFinanceProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		switch {
		case strings.HasSuffix(req.URL.Path, "DX-Y.NYB"):
			return jsonResponse(http.StatusOK, chartBody("DX-Y.NYB", 101, 100)), nil
		case strings.HasSuffix(req.URL.Path, "^VIX"):
			return jsonResponse(http.StatusOK, chartBody("^VIX", 14.2, 15)), nil
		case strings.HasSuffix(req.URL.Path, "GC=F"):
			return jsonResponse(http.StatusOK, `{"chart":{"result":[],"error":null}}`), nil
		}
		return jsonResponse(http.StatusServiceUnavailable, "down"), nil
	})

	snap, err := p.FetchMacro(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.DXY == nil || snap.DXY.Price != 101 || snap.DXY.ChangePercent != 1 {
		t.Fatalf("unexpected dxy: %+v", snap.DXY)
	}
	if snap.VIX == nil || snap.VIX.Price != 14.2 {
		t.Fatalf("unexpected vix: %+v", snap.VIX)
	}
	if snap.Gold != nil || snap.Nasdaq != nil {
		t.Fatalf("failed indices should be nil: %+v", snap)
	}
}

func TestYahooFetchMacroAllFail(t *testing.T) {
	t.Parallel()

	p := NewYahooFinanceProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "down"), nil
	})

	_, err := p.FetchMacro(context.Background())
	if domain.KindOf(err) != domain.KindUpstreamUnavailable {
		t.Fatalf("expected upstream_unavailable, got %v", err)
	}
}

func TestYahooChartError(t *testing.T) {
	t.Parallel()

	p := NewYahooFinanceProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`), nil
	})
	if _, err := p.FetchQuote(context.Background(), TickerGold); domain.KindOf(err) != domain.KindUpstreamUnavailable {
		t.Fatalf("expected upstream_unavailable, got %v", err)
	}
}
