package gateway

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/and161185/atns-client/internal/metrics"
	"github.com/and161185/atns-client/internal/session"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// RequestHook runs on the outgoing request before it is sent. An error aborts the call.
type RequestHook func(req *http.Request) error

// Exchange describes one finished round trip.
type Exchange struct {
	Request  *http.Request
	Response *http.Response // nil when Err != nil
	Err      error
	Elapsed  time.Duration
}

// ResponseHook observes a finished round trip. It must not consume the body.
type ResponseHook func(ex Exchange)

// hookTransport decorates a RoundTripper with pre-send and post-receive hooks.
type hookTransport struct {
	base http.RoundTripper
	pre  []RequestHook
	post []ResponseHook
}

// RoundTrip clones req (RoundTrippers must not mutate the caller's request),
// runs the pre hooks, sends, then runs the post hooks in order.
func (t *hookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for _, h := range t.pre {
		if err := h(out); err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, err
		}
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	ex := Exchange{Request: out, Response: resp, Err: err, Elapsed: time.Since(start)}
	for _, h := range t.post {
		h(ex)
	}
	return resp, err
}

// BearerHook sets "Authorization: Bearer <token>" from the session on requests
// to base's scheme and host. Any other request, including a redirect hop to a
// foreign host, and any request made without a token has the header removed.
func BearerHook(store session.Manager, base *url.URL) RequestHook {
	return func(req *http.Request) error {
		tok := store.Get().BearerToken()
		if tok == "" || !sameOrigin(base, req.URL) {
			req.Header.Del("Authorization")
			return nil
		}
		req.Header.Set("Authorization", "Bearer "+tok)
		return nil
	}
}

func sameOrigin(a, b *url.URL) bool {
	return a != nil && b != nil &&
		strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Host, b.Host)
}

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// RequestIDHook tags the request with the context's id or a fresh UUIDv4.
func RequestIDHook() RequestHook {
	return func(req *http.Request) error {
		if req.Header.Get(RequestIDHeader) != "" {
			return nil
		}
		id, ok := RequestIDFromCtx(req.Context())
		if !ok {
			v, err := uuid.NewV4()
			if err != nil {
				return err
			}
			id = v.String()
		}
		req.Header.Set(RequestIDHeader, id)
		return nil
	}
}

// UnauthorizedHook logs the session out and navigates to loginPath on every
// 401, whichever endpoint produced it. Other statuses pass through untouched.
func UnauthorizedHook(store session.Manager, nav Navigator, loginPath string) ResponseHook {
	return func(ex Exchange) {
		if ex.Response == nil || ex.Response.StatusCode != http.StatusUnauthorized {
			return
		}
		store.Logout()
		nav.Navigate(loginPath)
	}
}

// LoggingHook writes one structured line per exchange. No payloads, no tokens.
func LoggingHook(log *zap.Logger) ResponseHook {
	return func(ex Exchange) {
		fields := []zap.Field{
			zap.String("method", ex.Request.Method),
			zap.String("path", ex.Request.URL.Path),
			zap.Duration("dur", ex.Elapsed),
			zap.String("request_id", ex.Request.Header.Get(RequestIDHeader)),
		}
		if ex.Err != nil {
			log.Warn("http", append(fields, zap.Error(ex.Err))...)
			return
		}
		log.Info("http", append(fields, zap.Int("status", ex.Response.StatusCode))...)
	}
}

// MetricsHook records request counts, latency, transport failures and 401 teardowns.
func MetricsHook(m *metrics.Metrics) ResponseHook {
	return func(ex Exchange) {
		if ex.Err != nil {
			m.ObserveTransportError(ex.Request.Method)
			return
		}
		m.ObserveResponse(ex.Request.Method, ex.Response.StatusCode, ex.Elapsed)
		if ex.Response.StatusCode == http.StatusUnauthorized {
			m.RecordUnauthorized()
		}
	}
}
