package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// TitleFetcher is the read side of the catalog the browser needs. It is
// implemented by *Client and faked in tests.
type TitleFetcher interface {
	FetchFacets(ctx context.Context, kind Kind) (Facets, error)
	FetchTitles(ctx context.Context, query TitleQuery) ([]Title, error)
}

// DetailFetcher loads the detail pane for a single title.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, kind Kind, id string) (Details, error)
	FetchRecommendations(ctx context.Context, kind Kind, id string, limit int) ([]Title, error)
}

// Ensure Client implements both fetchers at compile time.
var (
	_ TitleFetcher  = (*Client)(nil)
	_ DetailFetcher = (*Client)(nil)
)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
	logger    *log.Logger
}

const (
	DefaultAPIBase         = "http://127.0.0.1:8000"
	DefaultRecommendations = 6

	defaultUserAgent = "reel/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 32 << 20

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger routes request logging to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client for the API rooted at apiBase.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: countsAsSuccess,
	})
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchFacets retrieves the genre and year lists for kind.
func (c *Client) FetchFacets(ctx context.Context, kind Kind) (Facets, error) {
	if c == nil {
		return Facets{}, fmt.Errorf("client is nil")
	}
	if kind == "" {
		return Facets{}, &MissingParameterError{Name: "type"}
	}
	values := url.Values{}
	values.Set("type", string(kind))
	rel := &url.URL{Path: "/api/filters", RawQuery: values.Encode()}
	var payload Facets
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return Facets{}, err
	}
	return payload, nil
}

// FetchTitles retrieves the titles matching query.
func (c *Client) FetchTitles(ctx context.Context, query TitleQuery) ([]Title, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if query.Kind == "" {
		return nil, &MissingParameterError{Name: "type"}
	}
	rel := &url.URL{Path: "/api/titles", RawQuery: query.Values().Encode()}
	var payload TitleList
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// FetchDetails retrieves the full record of a single title.
func (c *Client) FetchDetails(ctx context.Context, kind Kind, id string) (Details, error) {
	if c == nil {
		return Details{}, fmt.Errorf("client is nil")
	}
	values, err := identify(kind, id)
	if err != nil {
		return Details{}, err
	}
	rel := &url.URL{Path: "/api/details", RawQuery: values.Encode()}
	var payload Details
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return Details{}, err
	}
	return payload, nil
}

// FetchRecommendations retrieves up to limit titles similar to id. A limit of
// zero or less uses DefaultRecommendations.
func (c *Client) FetchRecommendations(ctx context.Context, kind Kind, id string, limit int) ([]Title, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values, err := identify(kind, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	values.Set("limit", strconv.Itoa(limit))
	rel := &url.URL{Path: "/api/recommendations", RawQuery: values.Encode()}
	var payload TitleList
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func identify(kind Kind, id string) (url.Values, error) {
	if kind == "" {
		return nil, &MissingParameterError{Name: "type"}
	}
	if strings.TrimSpace(id) == "" {
		return nil, &MissingParameterError{Name: "id"}
	}
	values := url.Values{}
	values.Set("type", string(kind))
	values.Set("id", id)
	return values, nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Op: rel.Path, Err: err}
	}
	started := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, rel)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &NetworkError{Op: rel.Path, Err: err}
		}
		c.logger.Debug("request failed", "path", rel.Path, "query", rel.RawQuery, "err", err)
		return err
	}
	c.logger.Debug("request done", "path", rel.Path, "query", rel.RawQuery, "bytes", len(body), "took", time.Since(started))
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, rel *url.URL) ([]byte, error) {
	// rel paths are rooted; they extend the api_base path instead of replacing it.
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: rel.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &RemoteError{Path: rel.Path, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Op: rel.Path, Err: err}
	}
	return body, nil
}

// countsAsSuccess decides what the breaker counts against the backend. Client
// errors and cancelled contexts say nothing about backend health.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return !remote.Server()
	}
	return false
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = DefaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
