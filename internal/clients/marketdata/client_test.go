package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbuddy/finbuddy/internal/models"
)

func TestGetLivePrice_ParsesQuote(t *testing.T) {
	var capturedSymbol, capturedToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedSymbol = r.URL.Query().Get("symbol")
		capturedToken = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c": 187.45, "d": 1.2, "dp": 0.64, "h": 189.0, "l": 185.3, "o": 186.0, "pc": 186.25}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	price, err := client.GetLivePrice(context.Background(), "AAPL", models.AssetTypeStock)
	if err != nil {
		t.Fatalf("GetLivePrice failed: %v", err)
	}

	if capturedSymbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", capturedSymbol)
	}
	if capturedToken != "test-key" {
		t.Errorf("expected api token forwarded, got %s", capturedToken)
	}
	if price != 187.45 {
		t.Errorf("expected price 187.45, got %.2f", price)
	}
}

func TestGetLivePrice_MapsCryptoSymbol(t *testing.T) {
	var capturedSymbol string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedSymbol = r.URL.Query().Get("symbol")
		w.Write([]byte(`{"c": 64123.5}`))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	price, err := client.GetLivePrice(context.Background(), "BTC", models.AssetTypeCrypto)
	if err != nil {
		t.Fatalf("GetLivePrice failed: %v", err)
	}

	if capturedSymbol != "BINANCE:BTCUSDT" {
		t.Errorf("expected BINANCE:BTCUSDT, got %s", capturedSymbol)
	}
	if price != 64123.5 {
		t.Errorf("expected 64123.5, got %.2f", price)
	}
}

func TestGetLivePrice_ZeroPriceIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Finnhub returns all zeros for unknown symbols
		w.Write([]byte(`{"c": 0, "d": null, "dp": null}`))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	if _, err := client.GetLivePrice(context.Background(), "NOPE", models.AssetTypeStock); err == nil {
		t.Fatal("expected error for zero price")
	}
}

func TestGetLivePrice_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	_, err := client.GetLivePrice(context.Background(), "AAPL", models.AssetTypeStock)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", apiErr.StatusCode)
	}
}

func TestFlexFloat64_StringAndNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{`123.45`, 123.45},
		{`"123.45"`, 123.45},
		{`"N/A"`, 0},
		{`""`, 0},
	}

	for _, tt := range tests {
		var f flexFloat64
		if err := f.UnmarshalJSON([]byte(tt.input)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) failed: %v", tt.input, err)
		}
		if float64(f) != tt.expected {
			t.Errorf("input %s: expected %.2f, got %.2f", tt.input, tt.expected, float64(f))
		}
	}
}
