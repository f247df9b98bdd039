package provider

import (
	"context"
	"net/http"
	"testing"

	"krypto-backend/internal/domain"
)

func TestCoinStatsFetchCoin(t *testing.T) {
	t.Parallel()

	p := NewCoinStatsProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/public/v1/coins/avalanche-2" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"coin":{"name":"Avalanche","symbol":"avax","rank":12,"price":35.5,
			"marketCap":14000000000,"volume":500000000,"availableSupply":400000000,"totalSupply":720000000,
			"priceChange1h":0.2,"priceChange1d":-1.4,"priceChange1w":5.1,"websiteUrl":"https://avax.network",
			"exp":["https://snowtrace.io"]}}`), nil
	})

	snap, err := p.FetchCoin(context.Background(), "AVAX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Name != "Avalanche" || snap.Symbol != "AVAX" || snap.Rank != 12 || snap.PriceUSD != 35.5 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.AvailableSupply != 400000000 || snap.TotalSupply != 720000000 || snap.PriceChange1d != -1.4 {
		t.Fatalf("unexpected supply fields: %+v", snap)
	}
	if len(snap.Explorers) != 1 || snap.WebsiteURL != "https://avax.network" {
		t.Fatalf("unexpected links: %+v", snap)
	}
}

func TestCoinStatsUnmappedSymbolUsesLowercase(t *testing.T) {
	t.Parallel()

	p := NewCoinStatsProvider(noopTracer(), "http://example")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/public/v1/coins/pepe" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"coin":{"name":"Pepe","symbol":"PEPE"}}`), nil
	})

	snap, err := p.FetchCoin(context.Background(), "PEPE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Explorers == nil {
		t.Fatal("explorers should be an empty list, not nil")
	}
}

func TestCoinStatsMissingCoin(t *testing.T) {
	t.Parallel()

	for _, resp := range []struct {
		status int
		body   string
	}{
		{http.StatusOK, `{}`},
		{http.StatusNotFound, `{"message":"not found"}`},
	} {
		p := NewCoinStatsProvider(noopTracer(), "http://example")
		p.client = stubClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(resp.status, resp.body), nil
		})
		_, err := p.FetchCoin(context.Background(), "ZZZ")
		if domain.KindOf(err) != domain.KindUnknownSymbol {
			t.Fatalf("status %d: expected unknown_symbol, got %v", resp.status, err)
		}
	}
}
