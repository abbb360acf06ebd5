// Package newsfeed provides a client for the NewsAPI market headlines feed
package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

const (
	DefaultBaseURL   = "https://newsapi.org/v2"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultQuery     = "stock market OR economy OR finance"
	MaxPageSize      = 100
)

// Client implements the NewsClient interface against NewsAPI
type Client struct {
	baseURL    string
	apiKey     string
	query      string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithQuery sets the search query for headlines
func WithQuery(query string) ClientOption {
	return func(c *Client) {
		c.query = query
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new news feed client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		query:   DefaultQuery,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("news feed API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type articleResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type everythingResponse struct {
	Status   string            `json:"status"`
	Articles []articleResponse `json:"articles"`
}

// GetRecentNews fetches recent market news, newest first, labelled with
// keyword-derived sentiment.
func (c *Client) GetRecentNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", c.query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Int("limit", limit).Msg("News feed API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/everything",
		}
	}

	var payload everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]models.NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Summary:     a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: published,
			Sentiment:   LabelSentiment(a.Title + " " + a.Description),
		})
	}

	return items, nil
}

var (
	positiveWords = []string{"surge", "rally", "gain", "record", "growth", "beat", "soar", "profit", "upgrade", "bullish"}
	negativeWords = []string{"crash", "fall", "drop", "loss", "decline", "plunge", "warning", "crisis", "fraud", "bearish", "downgrade"}
)

// LabelSentiment assigns a categorical sentiment to article text by
// counting positive and negative keywords.
func LabelSentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)

	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}

	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
