// Package wikipedia implements domain.SummaryProvider against the Wikipedia
// REST page summary API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
)

// Client fetches page summaries from the Wikipedia REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Wikipedia summary client. The base URL points at a
// REST v1 root, e.g. "https://en.wikipedia.org/api/rest_v1".
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		metrics:    metrics,
		logger:     logger,
	}
}

// Summarize fetches the summary for a page title guess. A 404 means no page
// exists for the title and returns a zero SummaryInfo with a nil error;
// other failures return an error for the caller to swallow or report.
func (c *Client) Summarize(ctx context.Context, title string) (domain.SummaryInfo, error) {
	// The REST API addresses pages with underscores instead of spaces.
	slug := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	reqURL := fmt.Sprintf("%s/page/summary/%s", c.baseURL, slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.SummaryInfo{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.SummaryRequests.WithLabelValues("error").Inc()
		return domain.SummaryInfo{}, fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.metrics.SummaryRequests.WithLabelValues("empty").Inc()
		return domain.SummaryInfo{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.SummaryRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return domain.SummaryInfo{}, fmt.Errorf("wikipedia API error: status %d: %s", resp.StatusCode, body)
	}

	var page pageSummary
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.metrics.SummaryRequests.WithLabelValues("error").Inc()
		return domain.SummaryInfo{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.SummaryRequests.WithLabelValues("success").Inc()
	return domain.SummaryInfo{
		Title:        page.Title,
		Extract:      page.Extract,
		ThumbnailURL: page.Thumbnail.Source,
	}, nil
}

// Wikipedia REST API response types. All fields are optional.

type pageSummary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}
