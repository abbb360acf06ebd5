package newsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbuddy/finbuddy/internal/models"
)

func TestGetRecentNews_ParsesArticles(t *testing.T) {
	var capturedQuery, capturedPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query().Get("q")
		capturedPageSize = r.URL.Query().Get("pageSize")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"title": "Markets rally on earnings beat",
					"description": "Stocks surge after strong results",
					"url": "https://example.com/a1",
					"publishedAt": "2026-08-30T09:00:00Z",
					"source": {"name": "Finnhub"}
				},
				{
					"title": "Tech stocks plunge amid fraud probe",
					"description": "Regulators issue warning",
					"url": "https://example.com/a2",
					"publishedAt": "2026-08-30T08:00:00Z",
					"source": {"name": "Alpha Vantage"}
				},
				{
					"title": "",
					"url": "https://example.com/skipped"
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	items, err := client.GetRecentNews(context.Background(), 25)
	if err != nil {
		t.Fatalf("GetRecentNews failed: %v", err)
	}

	if capturedQuery == "" {
		t.Error("expected default query to be sent")
	}
	if capturedPageSize != "25" {
		t.Errorf("expected pageSize 25, got %s", capturedPageSize)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 articles (empty title skipped), got %d", len(items))
	}
	if items[0].Sentiment != models.SentimentPositive {
		t.Errorf("expected positive sentiment for rally headline, got %s", items[0].Sentiment)
	}
	if items[1].Sentiment != models.SentimentNegative {
		t.Errorf("expected negative sentiment for plunge headline, got %s", items[1].Sentiment)
	}
	if items[1].Source != "Alpha Vantage" {
		t.Errorf("expected source Alpha Vantage, got %s", items[1].Source)
	}
	if items[0].PublishedAt.IsZero() {
		t.Error("expected published timestamp parsed")
	}
}

func TestGetRecentNews_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	client := NewClient("bad", WithBaseURL(srv.URL))
	if _, err := client.GetRecentNews(context.Background(), 10); err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestLabelSentiment(t *testing.T) {
	tests := []struct {
		text     string
		expected models.Sentiment
	}{
		{"Shares surge to record highs", models.SentimentPositive},
		{"Bank reports massive loss as shares fall", models.SentimentNegative},
		{"Fed holds rates steady", models.SentimentNeutral},
		{"Rally fades as stocks drop, loss widens", models.SentimentNegative},
	}

	for _, tt := range tests {
		if got := LabelSentiment(tt.text); got != tt.expected {
			t.Errorf("LabelSentiment(%q) = %s, want %s", tt.text, got, tt.expected)
		}
	}
}
