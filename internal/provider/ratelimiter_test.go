package provider

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"krypto-backend/internal/domain"
)

type limiterWait struct {
	provider string
	waited   time.Duration
	rejected bool
}

type recordingObserver struct {
	mu    sync.Mutex
	waits []limiterWait
}

func (o *recordingObserver) ObserveLimiterWait(provider string, waited time.Duration, rejected bool) {
	o.mu.Lock()
	o.waits = append(o.waits, limiterWait{provider, waited, rejected})
	o.mu.Unlock()
}

func (o *recordingObserver) snapshot() []limiterWait {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]limiterWait(nil), o.waits...)
}

func TestNewRateLimiterDisabled(t *testing.T) {
	if l := NewRateLimiter(CoinMarketCapName, 0); l != nil {
		t.Fatalf("zero rate should disable pacing, got %+v", l)
	}
}

func TestRateLimiterBurstThenPaces(t *testing.T) {
	// 600 calls per minute is one slot every 100ms.
	limiter := NewRateLimiter(CoinMarketCapName, 600, WithBurst(2))
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if time.Since(start) > 20*time.Millisecond {
		t.Fatal("burst calls should not wait")
	}

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("third call should wait for a slot, waited %v", elapsed)
	}
}

func TestCoinglassDerivativesPacedByLimiter(t *testing.T) {
	obs := &recordingObserver{}
	limiter := NewRateLimiter(CoinglassName, 600, WithBurst(1), WithWaitObserver(obs))
	p := NewCoinglassProvider(noopTracer(), "key", "http://example", limiter)
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/api/futures/funding-rate/exchange-list" {
			return jsonResponse(http.StatusOK, fundingBody), nil
		}
		return jsonResponse(http.StatusOK, oiBody), nil
	})

	if _, err := p.FetchDerivatives(context.Background(), "BTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waits := obs.snapshot()
	if len(waits) != 2 {
		t.Fatalf("expected one wait per upstream call, got %d", len(waits))
	}
	for _, w := range waits {
		if w.provider != CoinglassName || w.rejected {
			t.Fatalf("unexpected wait record: %+v", w)
		}
	}
	if waits[1].waited < 50*time.Millisecond {
		t.Fatalf("second call should be paced, waited %v", waits[1].waited)
	}
}

func TestCoinMarketCapLimiterRejection(t *testing.T) {
	obs := &recordingObserver{}
	limiter := NewRateLimiter(CoinMarketCapName, 1, WithWaitObserver(obs))
	var calls int
	p := NewCoinMarketCapProvider(noopTracer(), "key", "http://example", limiter)
	p.client = stubClient(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"data":{"BTC":{"name":"Bitcoin","symbol":"BTC","quote":{"USD":{"price":1}}}}}`), nil
	})

	if _, err := p.FetchQuote(context.Background(), "BTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := p.FetchQuote(ctx, "BTC")
	if domain.KindOf(err) != domain.KindUpstreamUnavailable {
		t.Fatalf("expected upstream_unavailable once the wait is abandoned, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("wait should stop when the context ends")
	}
	if calls != 1 {
		t.Fatalf("abandoned call must not reach the upstream, got %d requests", calls)
	}

	waits := obs.snapshot()
	if len(waits) != 2 || !waits[1].rejected || waits[1].provider != CoinMarketCapName {
		t.Fatalf("expected a rejection for %s, got %+v", CoinMarketCapName, waits)
	}
}
