package ine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// DefaultBaseURL is the public Tempus 3 endpoint.
const DefaultBaseURL = "https://servicios.ine.es/wstempus/js"

// Client talks to the Tempus 3 JSON service.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the service endpoint, used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithLanguage selects the response language, ES or EN.
func WithLanguage(lang string) ClientOption {
	return func(c *Client) { c.language = lang }
}

// WithTimeout bounds each table request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit sets the client-side request rate.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient creates a Tempus 3 client with sane defaults: Spanish
// responses, a 30 second timeout and 2 requests per second.
func NewClient(logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		language:   "ES",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// TableDataOptions narrows a DATOS_TABLA request.
type TableDataOptions struct {
	// Nult requests only the last N periods; zero fetches the full series.
	Nult int
	// Tip selects the periodicity: M, T, A or combinations such as AM.
	Tip string
	// Tv filters by variable, each element in varId:valorId form. The
	// service expects one tv parameter per filter.
	Tv []string
}

// TableData downloads all records of a table. The response is the raw
// record list; callers filter and normalize it through internal/series.
func (c *Client) TableData(ctx context.Context, tableID string, opts TableDataOptions) ([]series.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/DATOS_TABLA/%s", c.baseURL, c.language, tableID)

	params := url.Values{}
	if opts.Nult > 0 {
		params.Set("nult", strconv.Itoa(opts.Nult))
	}
	if opts.Tip != "" {
		params.Set("tip", opts.Tip)
	}
	for _, tv := range opts.Tv {
		params.Add("tv", tv)
	}
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for table %s: %w", tableID, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch table %s: %w", tableID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("fetch table %s: unexpected status %d: %s", tableID, resp.StatusCode, body)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var records []series.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode table %s response: %w", tableID, err)
	}

	c.logger.Debug("Table downloaded",
		slog.String("table_id", tableID),
		slog.Int("record_count", len(records)),
		slog.Duration("elapsed", time.Since(start)))

	return records, nil
}
