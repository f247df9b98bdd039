package provider

import (
	"context"
	"net/http"
	"testing"
	"time"

	"krypto-backend/internal/domain"
)

func TestFearGreedFetchLatest(t *testing.T) {
	p := NewFearGreedProvider(noopTracer(), "https://example.com")
	p.client = stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/fng/" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"data":[{"value":"63","value_classification":"Greed","timestamp":"1771009800","time_until_update":"1111"}]}`
		return jsonResponse(http.StatusOK, body), nil
	})

	snap, err := p.FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Value != 63 || snap.Classification != "Greed" || snap.TimeUntilUpdateS != 1111 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if !snap.Timestamp.Equal(time.Unix(1771009800, 0).UTC()) {
		t.Fatalf("unexpected timestamp: %v", snap.Timestamp)
	}
}

func TestFearGreedBadPayloads(t *testing.T) {
	for _, body := range []string{
		`{"data":[]}`,
		`{"data":[{"value":"abc","timestamp":"1771009800"}]}`,
		`{"data":[{"value":"150","timestamp":"1771009800"}]}`,
		`not json`,
	} {
		p := NewFearGreedProvider(noopTracer(), "https://example.com")
		p.client = stubClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		})
		if _, err := p.FetchLatest(context.Background()); domain.KindOf(err) != domain.KindBadSchema {
			t.Fatalf("body %q: expected bad_schema, got %v", body, err)
		}
	}
}
