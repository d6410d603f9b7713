package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"QuoteDesk/internal/domain/models"
	drepo "QuoteDesk/internal/domain/repository"
	xhttp "QuoteDesk/pkg/http"
	applogger "QuoteDesk/pkg/logger"
	"QuoteDesk/pkg/util"
)

// DefaultBaseURL is the public Polygon.io REST endpoint.
const DefaultBaseURL = "https://api.polygon.io"

const (
	callLatest = "latest"
	callRange  = "range"
)

// Client implements MarketData backed by the Polygon aggregates API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	metrics drepo.Metrics
	logger  *applogger.Logger
}

// New creates a Polygon REST client. The timeout bounds every upstream call.
func New(baseURL string, timeout time.Duration, metrics drepo.Metrics, logger *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent("quotedesk/1.0")),
		metrics: metrics,
		logger:  logger,
	}
}

type aggsResponse struct {
	Ticker       string       `json:"ticker"`
	Status       string       `json:"status"`
	ResultsCount int          `json:"resultsCount"`
	Results      []models.Bar `json:"results"`
}

// PreviousClose fetches the previous trading day bar.
func (c *Client) PreviousClose(ctx context.Context, q drepo.BarQuery) ([]models.Bar, error) {
	path := fmt.Sprintf("/v2/aggs/ticker/%s/prev", url.PathEscape(strings.ToUpper(q.Symbol)))
	return c.fetch(ctx, callLatest, path, q.APIKey, map[string][]string{
		"adjusted": {"true"},
	})
}

// Aggregates fetches bars between spec's dates at spec's sampling, oldest first.
func (c *Client) Aggregates(ctx context.Context, q drepo.BarQuery, spec drepo.TimeframeSpec) ([]models.Bar, error) {
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/%s/%s/%s/%s",
		url.PathEscape(strings.ToUpper(q.Symbol)),
		strconv.Itoa(spec.Multiplier),
		spec.Unit,
		spec.From(),
		spec.To(),
	)
	return c.fetch(ctx, callRange, path, q.APIKey, map[string][]string{
		"adjusted": {"true"},
		"sort":     {"asc"},
	})
}

func (c *Client) fetch(ctx context.Context, call, path, apiKey string, params map[string][]string) ([]models.Bar, error) {
	start := time.Now()
	params["apiKey"] = []string{apiKey}

	c.logger.Debug("polygon request",
		applogger.String("call", call),
		applogger.String("path", path),
		applogger.String("api_key", util.MaskSecret(apiKey)),
	)

	var out aggsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: params,
	}, &out)
	c.observe(call, err, time.Since(start))
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			return nil, &models.UpstreamError{Call: call, Status: se.StatusCode, Body: string(se.Body)}
		}
		return nil, fmt.Errorf("polygon %s: %w", call, err)
	}

	c.logger.Debug("polygon response",
		applogger.String("call", call),
		applogger.String("status", out.Status),
		applogger.Int("results", len(out.Results)),
	)
	return out.Results, nil
}

func (c *Client) observe(call string, err error, d time.Duration) {
	if c.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			result = strconv.Itoa(se.StatusCode)
		}
	}
	c.metrics.RecordUpstream(call, result, d.Seconds())
}

var _ drepo.MarketData = (*Client)(nil)
