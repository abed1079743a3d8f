package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	drepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/breaker"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/cache"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/ratelimit"
	"github.com/yigiitcoskun/us-economic-insights/pkg/config"
	xhttp "github.com/yigiitcoskun/us-economic-insights/pkg/http"
	"github.com/yigiitcoskun/us-economic-insights/pkg/logger"
	"github.com/yigiitcoskun/us-economic-insights/pkg/util"
)

const (
	DefaultBaseURL = "https://api.stlouisfed.org/fred"
	DefaultLimit   = 100

	observationsPath = "/series/observations"
	limiterKey       = "fred"
)

// ErrNoObservations marks a response without an observations array.
var ErrNoObservations = errors.New("fred: response has no observations")

type observationsResponse struct {
	Observations *[]models.RawObservation `json:"observations"`
}

// Client implements drepo.SeriesFetcher against the FRED observations API.
type Client struct {
	baseURL  string
	apiKey   string
	limit    int
	cacheTTL time.Duration

	http    *xhttp.Client
	limiter *ratelimit.Limiter
	breaker *breaker.Breaker
	cache   cache.BytesCache
	catalog models.Catalog
	metrics drepo.Metrics
	l       *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(c *xhttp.Client) Option { return func(cl *Client) { cl.http = c } }

func WithLimiter(l *ratelimit.Limiter) Option { return func(cl *Client) { cl.limiter = l } }

func WithBreaker(b *breaker.Breaker) Option { return func(cl *Client) { cl.breaker = b } }

// WithCache stores raw responses for ttl; ttl <= 0 disables caching.
func WithCache(c cache.BytesCache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithCatalog lets fetched series carry their display label.
func WithCatalog(c models.Catalog) Option { return func(cl *Client) { cl.catalog = c } }

func WithMetrics(m drepo.Metrics) Option { return func(cl *Client) { cl.metrics = m } }

func WithLogger(l *logger.Logger) Option { return func(cl *Client) { cl.l = l } }

func New(baseURL, apiKey string, limit int, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limit:   limit,
		cache:   cache.Nop{},
		l:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// NewFromConfig wires the client with the limiter and breaker settings from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Client {
	fc := cfg.Fred
	base := []Option{
		WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(fc.Timeout))),
		WithLimiter(ratelimit.New(fc.RequestsPerSecond, fc.Burst)),
	}
	if fc.Breaker.Enabled {
		base = append(base, WithBreaker(breaker.New("fred", breaker.Settings{
			MaxRequests:  fc.Breaker.MaxRequests,
			Interval:     fc.Breaker.Interval,
			Timeout:      fc.Breaker.Timeout,
			MinRequests:  fc.Breaker.MinRequests,
			FailureRatio: fc.Breaker.FailureRatio,
			MaxFailures:  fc.Breaker.MaxFailures,
			IsSuccessful: isUpstreamHealthy,
		})))
	}
	return New(fc.BaseURL, fc.APIKey, fc.Limit, append(base, opts...)...)
}

// FetchSeries returns the observations of code inside window, ascending.
// A body without observations yields an empty series and no error; transport
// and status failures are returned so callers can decide how to degrade.
func (c *Client) FetchSeries(ctx context.Context, code string, window drepo.DateRange) (models.Series, error) {
	start := time.Now()
	label := c.catalog.Label(code)

	body, err := c.observations(ctx, code, window)
	if c.metrics != nil {
		c.metrics.RecordLatency("fred_fetch", time.Since(start).Seconds())
	}
	if err != nil {
		c.record(code, "error")
		return models.Series{Code: code, Label: label}, fmt.Errorf("fetch %s: %w", code, err)
	}

	raw, err := decodeObservations(body)
	if err != nil {
		c.record(code, "empty")
		c.l.Warn("fred: no observations",
			logger.String("code", code),
			logger.Error(err),
		)
		return models.Series{Code: code, Label: label}, nil
	}

	s := models.NewSeries(code, label, raw)
	if s.IsEmpty() {
		c.record(code, "empty")
	} else {
		c.record(code, "ok")
	}
	c.l.Debug("fred: series fetched",
		logger.String("code", code),
		logger.Int("raw", len(raw)),
		logger.Int("observations", s.Len()),
	)
	return s, nil
}

func (c *Client) observations(ctx context.Context, code string, window drepo.DateRange) ([]byte, error) {
	key := code + ":" + window.Key() + ":" + strconv.Itoa(c.limit)
	if c.cacheTTL > 0 {
		b, ok, err := c.cache.GetBytes(ctx, key)
		if err != nil {
			c.l.Warn("fred: cache read failed", logger.String("code", code), logger.Error(err))
		} else if ok {
			return b, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, limiterKey); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	fetch := func() (any, error) {
		var b []byte
		err := c.http.Get(ctx, c.baseURL+observationsPath, c.query(code, window), &b)
		return b, err
	}

	var (
		v   any
		err error
	)
	if c.breaker != nil {
		v, err = c.breaker.Execute(fetch)
	} else {
		v, err = fetch()
	}
	if err != nil {
		return nil, err
	}
	body, _ := v.([]byte)

	if c.cacheTTL > 0 && len(body) > 0 {
		if err := c.cache.SetBytes(ctx, key, body, c.cacheTTL); err != nil {
			c.l.Warn("fred: cache write failed", logger.String("code", code), logger.Error(err))
		}
	}
	return body, nil
}

func (c *Client) query(code string, window drepo.DateRange) url.Values {
	q := url.Values{
		"series_id":  {code},
		"api_key":    {c.apiKey},
		"file_type":  {"json"},
		"sort_order": {"desc"},
		"limit":      {strconv.Itoa(c.limit)},
	}
	if !window.Start.IsZero() {
		q["observation_start"] = []string{util.FormatDate(window.Start)}
	}
	if !window.End.IsZero() {
		q["observation_end"] = []string{util.FormatDate(window.End)}
	}
	return q
}

func (c *Client) record(code, result string) {
	if c.metrics != nil {
		c.metrics.RecordFetch(code, result)
	}
}

func decodeObservations(body []byte) ([]models.RawObservation, error) {
	if len(body) == 0 {
		return nil, ErrNoObservations
	}
	var resp observationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}
	if resp.Observations == nil {
		return nil, ErrNoObservations
	}
	return *resp.Observations, nil
}

// isUpstreamHealthy keeps per-request mistakes (unknown series id, bad query)
// from tripping the breaker. A 403 means the API key itself is rejected; every
// later request fails the same way, so it counts as a failure.
func isUpstreamHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return !se.Temporary() && se.Code != http.StatusForbidden
	}
	return errors.Is(err, context.Canceled)
}

var _ drepo.SeriesFetcher = (*Client)(nil)
