// Package gateway is the single HTTP path to the backend. Every request gets
// the session's bearer token; every 401 tears the session down.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/metrics"
	"github.com/and161185/atns-client/internal/model"
	"github.com/and161185/atns-client/internal/session"
	"go.uber.org/zap"
)

// DefaultBaseURL is the backend's API root.
const DefaultBaseURL = "http://localhost:8080/api/v1"

const maxErrBody = 64 << 10

// Client sends requests to the backend through the hook chain.
type Client struct {
	base  string
	hc    *http.Client
	store session.Manager
}

type options struct {
	log       *zap.Logger
	metrics   *metrics.Metrics
	nav       Navigator
	base      http.RoundTripper
	timeout   time.Duration
	loginPath string
}

// Option tweaks New.
type Option func(*options)

// WithLogger sets the logger used by LoggingHook.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// WithMetrics enables MetricsHook.
func WithMetrics(m *metrics.Metrics) Option { return func(o *options) { o.metrics = m } }

// WithNavigator sets where 401s redirect to.
func WithNavigator(n Navigator) Option { return func(o *options) { o.nav = n } }

// WithTransport replaces the underlying RoundTripper (default http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option { return func(o *options) { o.base = rt } }

// WithTimeout bounds each request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithLoginPath overrides the 401 redirect target.
func WithLoginPath(p string) Option { return func(o *options) { o.loginPath = p } }

// New builds a Client rooted at baseURL.
func New(baseURL string, store session.Manager, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if store == nil {
		return nil, errors.New("gateway: nil session store")
	}

	o := options{
		log:       zap.NewNop(),
		nav:       NavigatorFunc(func(string) {}),
		base:      http.DefaultTransport,
		loginPath: LoginPath,
	}
	for _, fn := range opts {
		fn(&o)
	}

	tr := &hookTransport{
		base: o.base,
		pre:  []RequestHook{BearerHook(store, u), RequestIDHook()},
		post: []ResponseHook{
			UnauthorizedHook(store, o.nav, o.loginPath),
			LoggingHook(o.log),
			MetricsHook(o.metrics),
		},
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		hc:    &http.Client{Transport: tr, Timeout: o.timeout},
		store: store,
	}, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

// Session exposes the store the client reads its credentials from.
func (c *Client) Session() session.Manager { return c.store }

// Do sends one request. The caller owns resp.Body. Non-2xx statuses are not
// turned into errors here; use DoJSON for that.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, opts ...CallOption) (*http.Response, error) {
	cl := call{header: http.Header{}, query: url.Values{}}
	snap := c.store.Get()
	for _, fn := range opts {
		if err := fn(&cl, snap); err != nil {
			return nil, err
		}
	}

	target := c.base + path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range cl.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.hc.Do(req)
}

// DoJSON marshals in (when non-nil), sends, and decodes a 2xx body into out
// (when non-nil). Non-2xx becomes *errs.HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any, opts ...CallOption) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok && !json.Valid(b) {
		*s = string(b)
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	he := &errs.HTTPError{StatusCode: resp.StatusCode}

	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &env) == nil {
		he.Message = env.Error
		if he.Message == "" {
			he.Message = env.Message
		}
	}
	if he.Message == "" {
		he.Message = strings.TrimSpace(string(b))
	}
	return he
}

type call struct {
	header http.Header
	query  url.Values
}

// CallOption shapes a single request. It sees the session snapshot taken when
// the call started, so identity headers are resolved at call time.
type CallOption func(c *call, s model.Session) error

// ProfileIDHeader and OrganizerIDHeader are identity headers some endpoints expect.
const (
	ProfileIDHeader   = "X-Profile-Id"
	OrganizerIDHeader = "X-Organizer-Id"
)

// WithProfileID sends the session's profile id as X-Profile-Id.
func WithProfileID() CallOption { return identityHeader(ProfileIDHeader) }

// WithOrganizerID sends the session's profile id as X-Organizer-Id.
func WithOrganizerID() CallOption { return identityHeader(OrganizerIDHeader) }

func identityHeader(name string) CallOption {
	return func(c *call, s model.Session) error {
		if s.ProfileID == nil {
			return errs.ErrMissingProfileID
		}
		c.header.Set(name, strconv.FormatInt(*s.ProfileID, 10))
		return nil
	}
}

// WithProfileIDValue sends an explicit X-Profile-Id.
func WithProfileIDValue(id int64) CallOption {
	return func(c *call, _ model.Session) error {
		c.header.Set(ProfileIDHeader, strconv.FormatInt(id, 10))
		return nil
	}
}

// WithHeader sets an arbitrary header.
func WithHeader(k, v string) CallOption {
	return func(c *call, _ model.Session) error {
		c.header.Set(k, v)
		return nil
	}
}

// WithQuery adds a query parameter. Empty values are skipped.
func WithQuery(k, v string) CallOption {
	return func(c *call, _ model.Session) error {
		if v != "" {
			c.query.Add(k, v)
		}
		return nil
	}
}

// WithQueryInt adds an integer query parameter.
func WithQueryInt(k string, v int) CallOption {
	return func(c *call, _ model.Session) error {
		c.query.Add(k, strconv.Itoa(v))
		return nil
	}
}
