// Package client calls the Trove v3 result API with bounded retry and
// normalizes whichever response shape comes back.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
	"github.com/haideraly09/trove-api-integration/internal/trove/types"
)

const (
	resultPath       = "/v3/result"
	defaultUserAgent = "TroveSearchApp/1.0"
	keyPreviewLen    = 8
)

// Client is a Trove API client. It holds no per-request state; concurrent
// use is safe.
type Client struct {
	config     *types.ClientConfig
	httpClient *http.Client
	logger     *logger.Logger

	// sleep is swapped out in tests so retry timing can be asserted
	// without real multi-second waits.
	sleep func(time.Duration)
}

// New creates a Trove client from configuration
func New(config *types.ClientConfig, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.L()
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: log,
		sleep:  time.Sleep,
	}, nil
}

// HasAPIKey reports whether a key was configured at startup
func (c *Client) HasAPIKey() bool {
	return c.config.APIKey != ""
}

// KeyPreview returns the first characters of the configured key for
// diagnostics, or "Missing" when no key is set.
func (c *Client) KeyPreview() string {
	if c.config.APIKey == "" {
		return "Missing"
	}
	if len(c.config.APIKey) <= keyPreviewLen {
		return c.config.APIKey + "..."
	}
	return c.config.APIKey[:keyPreviewLen] + "..."
}

func (c *Client) maxAttempts() int {
	if c.config.MaxRetries > 0 {
		return c.config.MaxRetries
	}
	return 3
}

func (c *Client) backoff() time.Duration {
	if c.config.RetryBackoff > 0 {
		return time.Duration(c.config.RetryBackoff) * time.Second
	}
	return 3 * time.Second
}

func (c *Client) userAgent() string {
	if c.config.UserAgent != "" {
		return c.config.UserAgent
	}
	return defaultUserAgent
}

func (c *Client) buildSearchURL(req *types.SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("category", "newspaper")
	params.Set("key", c.config.APIKey)
	params.Set("encoding", "json")
	params.Set("n", strconv.Itoa(req.Limit))
	if req.Offset > 0 {
		params.Set("s", strconv.Itoa(req.Offset))
	}
	return c.config.APIHost + resultPath + "?" + params.Encode()
}

// Search executes a search against the Trove result endpoint with bounded
// retry and returns the normalized envelope. Precondition failures
// (missing key, empty query) are reported before any upstream call.
func (c *Client) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchEnvelope, error) {
	if !c.HasAPIKey() {
		return nil, types.ErrAPIKeyMissing
	}

	req.Normalize()
	if req.Query == "" {
		return nil, types.ErrEmptyQuery
	}

	body, err := c.searchWithRetry(ctx, c.buildSearchURL(req))
	if err != nil {
		return nil, err
	}

	set := extractRecords(body)
	docs := make([]types.Record, len(set.records))
	for i, rec := range set.records {
		docs[i] = normalizeRecord(rec, i)
	}

	c.logger.Info("trove search complete",
		zap.String("query", req.Query),
		zap.Int("returned", len(docs)),
		zap.Int64("total", set.total),
	)

	return &types.SearchEnvelope{
		Response: types.ResultPage{
			Docs:     docs,
			NumFound: int(set.total),
			Start:    req.Offset,
		},
		Query:   req.Query,
		Success: true,
	}, nil
}

// searchWithRetry runs the attempt loop. The retry decision itself lives
// in decideRetry; this loop only does the waiting and bookkeeping.
func (c *Client) searchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	maxAttempts := c.maxAttempts()

	lastStatus := 0
	lastDetail := ""

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, body, err := c.attempt(ctx, rawURL)
		if err == nil {
			lastStatus = status
		}

		switch decideRetry(attempt, maxAttempts, status, err) {
		case actionSucceed:
			return body, nil

		case actionFailPermanent:
			return nil, &types.UpstreamError{
				StatusCode: status,
				Attempts:   attempt,
				Detail:     fmt.Sprintf("%d: %s", status, body),
			}

		case actionRetry:
			lastDetail = attemptDetail(attempt, status, err)
			c.logger.Warn("trove attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.String("reason", lastDetail),
			)
			c.sleep(c.backoff())

		case actionExhausted:
			lastDetail = attemptDetail(attempt, status, err)
		}
	}

	if lastStatus == 0 {
		lastStatus = http.StatusInternalServerError
	}
	return nil, &types.UpstreamError{
		StatusCode: lastStatus,
		Attempts:   maxAttempts,
		Detail:     lastDetail,
	}
}

func attemptDetail(attempt, status int, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%d %s (attempt %d)", status, http.StatusText(status), attempt)
}

// attempt issues one upstream request. A non-nil error means a
// network-level failure; otherwise the status and body are returned as-is.
func (c *Client) attempt(ctx context.Context, rawURL string) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("User-Agent", c.userAgent())
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// Probe issues a single non-retried request with a fixed query and reports
// upstream reachability plus which response shape came back. Used by the
// diagnostic endpoints only; it shares none of the retry logic.
func (c *Client) Probe(ctx context.Context, query string, limit int) (*types.ProbeReport, error) {
	req := &types.SearchRequest{Query: query, Limit: limit}
	req.Normalize()

	status, body, err := c.attempt(ctx, c.buildSearchURL(req))
	if err != nil {
		return nil, err
	}

	report := &types.ProbeReport{
		StatusCode: status,
		StatusText: http.StatusText(status),
		OK:         status >= 200 && status < 300,
	}
	if !report.OK {
		return report, nil
	}

	root := gjson.ParseBytes(body)
	records := firstCategoryRecords(root)
	report.HasCategory = root.Get("category").Exists()
	report.HasArticles = records.Get("article").IsArray() && len(records.Get("article").Array()) > 0
	report.HasWorks = records.Get("work").IsArray() && len(records.Get("work").Array()) > 0
	report.Total = records.Get("total").Int()
	return report, nil
}
