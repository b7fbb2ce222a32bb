package parallel

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/habiliai/parallelweb/config"
	"github.com/habiliai/parallelweb/errors"
	"github.com/habiliai/parallelweb/internal/mylog"
)

const searchPath = "/search"

type (
	// Client calls the Parallel search endpoint. Its configuration and
	// credential are fixed at construction, so one Client may be shared by
	// concurrent callers without locking.
	Client struct {
		baseURL    string
		apiKey     Credential
		config     SearchConfig
		httpClient *http.Client
		newSession SessionFactory
		logger     *slog.Logger
	}

	// SessionFactory opens the HTTP session used by one asynchronous call.
	// release is always invoked before the call resolves.
	SessionFactory func() (session *http.Client, release func())

	Option func(*options)

	options struct {
		apiKey     string
		baseURL    string
		config     *SearchConfig
		httpClient *http.Client
		newSession SessionFactory
		logger     *slog.Logger
		lookupEnv  config.LookupEnvFunc
	}
)

func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.apiKey = apiKey
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithSearchConfig(c SearchConfig) Option {
	return func(o *options) {
		o.config = &c
	}
}

// WithHTTPClient sets the client used by Search. Unless WithSessionFactory is
// also given, SearchAsync reuses it too and leaves its connections alone.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func WithSessionFactory(f SessionFactory) Option {
	return func(o *options) {
		o.newSession = f
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLookupEnv replaces os.LookupEnv for credential and base URL resolution.
func WithLookupEnv(lookupEnv config.LookupEnvFunc) Option {
	return func(o *options) {
		o.lookupEnv = lookupEnv
	}
}

func NewClient(opts ...Option) (*Client, error) {
	o := &options{
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.lookupEnv == nil {
		o.lookupEnv = os.LookupEnv
	}

	resolved, err := config.ResolveParallelConfig(o.apiKey, o.baseURL, o.lookupEnv)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    resolved.APIUrl,
		apiKey:     Credential(resolved.APIKey),
		config:     DefaultSearchConfig(),
		httpClient: o.httpClient,
		newSession: o.newSession,
		logger:     o.logger,
	}

	if o.config != nil {
		c.config = *o.config
	}
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	if c.newSession == nil {
		if c.httpClient != nil {
			shared := c.httpClient
			c.newSession = func() (*http.Client, func()) { return shared, func() {} }
		} else {
			c.newSession = newRequestScopedSession
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = mylog.Discard()
	}

	return c, nil
}

func newRequestScopedSession() (*http.Client, func()) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{Transport: transport}, transport.CloseIdleConnections
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SearchURL() string {
	return c.baseURL + searchPath
}

func (c *Client) APIKey() Credential {
	return c.apiKey
}

func (c *Client) Config() SearchConfig {
	return c.config
}

// Search performs the call on the calling goroutine.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	return c.search(ctx, c.httpClient, req)
}

// SearchAsync starts the call in the background on a session that lives only
// as long as this call.
func (c *Client) SearchAsync(ctx context.Context, req *SearchRequest) *Future[*SearchResult] {
	return Go(ctx, func(ctx context.Context) (*SearchResult, error) {
		session, release := c.newSession()
		defer release()

		return c.search(ctx, session, req)
	})
}

// RequestBody merges req with the client's search config. Request fields win
// on a name clash.
func (c *Client) RequestBody(req *SearchRequest) map[string]any {
	body := map[string]any{
		"max_results":          c.config.MaxResults,
		"processor":            c.config.Processor,
		"max_chars_per_result": c.config.MaxCharsPerResult,
	}

	queries := req.SearchQueries
	if queries == nil {
		queries = []string{}
	}
	body["objective"] = req.Objective
	body["search_queries"] = queries

	return body
}

func (c *Client) search(ctx context.Context, hc *http.Client, req *SearchRequest) (*SearchResult, error) {
	if req == nil {
		return nil, errors.NewValidationError("", "search request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	callID := uuid.NewString()
	searchURL := c.SearchURL()
	started := time.Now()

	body, err := json.Marshal(c.RequestBody(req))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode search request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, &errors.TransportError{URL: searchURL, Err: err}
	}
	httpReq.Header.Set("x-api-key", c.apiKey.Reveal())
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("parallel search started",
		"call_id", callID,
		"url", searchURL,
		"objective_len", len(req.Objective),
		"queries", len(req.SearchQueries),
		"processor", c.config.Processor)

	resp, err := hc.Do(httpReq)
	if err != nil {
		c.logger.Debug("parallel search failed", "call_id", callID, "error", err)
		return nil, &errors.TransportError{URL: searchURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("parallel search failed", "call_id", callID, "error", err)
		return nil, &errors.TransportError{URL: searchURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &errors.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Detail:     errorDetail(raw),
			Body:       raw,
		}
		c.logger.Debug("parallel search rejected",
			"call_id", callID,
			"status", resp.StatusCode,
			"elapsed", time.Since(started))
		return nil, statusErr
	}

	result, err := decodeSearchResult(resp.StatusCode, raw)
	if err != nil {
		c.logger.Debug("parallel search returned malformed body", "call_id", callID, "status", resp.StatusCode, "error", err)
		return nil, err
	}

	c.logger.Debug("parallel search completed",
		"call_id", callID,
		"status", resp.StatusCode,
		"search_id", result.SearchID,
		"excerpts", len(result.Results.Excerpts),
		"elapsed", time.Since(started))

	return result, nil
}

func statusText(resp *http.Response) string {
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return resp.Status
}
