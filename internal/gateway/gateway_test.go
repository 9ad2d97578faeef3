package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/metrics"
	"github.com/and161185/atns-client/internal/model"
	"github.com/and161185/atns-client/internal/session"
	"github.com/and161185/atns-client/internal/storage"
	"github.com/gofrs/uuid/v5"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// recorder captures what the backend saw.
type recorder struct {
	mu      sync.Mutex
	hits    int
	headers []http.Header
	queries []string
	status  int
	body    string
}

func (r *recorder) handler(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits++
	r.headers = append(r.headers, req.Header.Clone())
	r.queries = append(r.queries, req.URL.RawQuery)
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) set(status int, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status, r.body = status, body
}

func (r *recorder) last() http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.headers[len(r.headers)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), storage.NewMemory(), "", zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	return s
}

func setup(t *testing.T, opts ...Option) (*Client, *session.Store, *recorder, *Recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	t.Cleanup(srv.Close)

	store := newStore(t)
	nav := &Recorder{}
	opts = append([]Option{WithNavigator(nav), WithLogger(zaptest.NewLogger(t))}, opts...)
	c, err := New(srv.URL+"/api/v1/", store, opts...)
	require.NoError(t, err)
	return c, store, rec, nav
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	c, err := New("", store)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, c.BaseURL())

	_, err = New("ftp://x", store)
	require.Error(t, err)

	_, err = New("http://x", nil)
	require.Error(t, err)
}

func TestBearer_PresentWhenTokenSet(t *testing.T) {
	t.Parallel()

	c, store, rec, _ := setup(t)
	store.Login(42, "alice", "tok123", "ref456", []string{"STUDENT"})

	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil))
	require.Equal(t, "Bearer tok123", rec.last().Get("Authorization"))
}

func TestBearer_AbsentWhenNoToken(t *testing.T) {
	t.Parallel()

	c, _, rec, _ := setup(t)

	err := c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil,
		WithHeader("Authorization", "Bearer stale"))
	require.NoError(t, err)
	_, present := rec.last()["Authorization"]
	require.False(t, present, "stale Authorization header must be removed")
}

func TestBearer_EmptyTokenIsAbsent(t *testing.T) {
	t.Parallel()

	c, store, rec, _ := setup(t)
	store.Login(1, "u", "", "", nil)

	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil))
	require.Empty(t, rec.last().Values("Authorization"))
}

func TestBearer_NotForwardedAcrossHosts(t *testing.T) {
	t.Parallel()

	var foreignAuth atomic.Value
	foreignAuth.Store("unset")
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignAuth.Store(r.Header.Get("Authorization"))
	}))
	t.Cleanup(foreign.Close)
	// localhost and 127.0.0.1 are different hosts to the client.
	foreignURL := strings.Replace(foreign.URL, "127.0.0.1", "localhost", 1)

	var movedAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/away", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, foreignURL+"/collect", http.StatusFound)
	})
	mux.HandleFunc("/api/v1/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/new", http.StatusFound)
	})
	mux.HandleFunc("/api/v1/new", func(w http.ResponseWriter, r *http.Request) {
		movedAuth.Store(r.Header.Get("Authorization"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := newStore(t)
	store.Login(42, "alice", "tok123", "", nil)
	c, err := New(srv.URL+"/api/v1", store)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/away", nil, nil))
	require.Equal(t, "", foreignAuth.Load(), "token must not leave the API host")

	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/old", nil, nil))
	require.Equal(t, "Bearer tok123", movedAuth.Load(), "same-host redirect keeps the token")
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://api.example.org:8443/api/v1")
	require.NoError(t, err)
	tests := []struct {
		target string
		want   bool
	}{
		{"https://api.example.org:8443/api/v1/events", true},
		{"https://API.example.org:8443/x", true},
		{"http://api.example.org:8443/api/v1/events", false},
		{"https://api.example.org/api/v1/events", false},
		{"https://evil.example.org:8443/api/v1/events", false},
	}
	for _, tc := range tests {
		u, err := url.Parse(tc.target)
		require.NoError(t, err)
		require.Equal(t, tc.want, sameOrigin(base, u), tc.target)
	}
	require.False(t, sameOrigin(nil, base))
}

func TestUnauthorized_LogsOutAndNavigatesOnce(t *testing.T) {
	t.Parallel()

	c, store, rec, nav := setup(t)
	store.Login(42, "alice", "tok123", "ref456", []string{"STUDENT"})
	rec.set(http.StatusUnauthorized, `{"error":"token expired"}`)

	err := c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	var he *errs.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, "token expired", he.Message)
	require.Equal(t, model.Session{}, store.Get())
	require.Equal(t, []string{LoginPath}, nav.Paths())
}

func TestNon401Errors_PassThrough(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		c, store, rec, nav := setup(t)
		store.Login(42, "alice", "tok123", "ref456", nil)
		rec.set(code, `{"message":"nope"}`)

		err := c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil)

		var he *errs.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, code, he.StatusCode)
		require.Equal(t, "nope", he.Message)
		require.False(t, errors.Is(err, errs.ErrUnauthorized))
		require.True(t, store.Get().IsAuthenticated, "status %d must not log out", code)
		require.Empty(t, nav.Paths())
		require.Equal(t, 1, rec.count(), "no retries")
	}
}

func TestAliceScenario(t *testing.T) {
	t.Parallel()

	c, store, rec, nav := setup(t)
	ctx := context.Background()

	store.Login(42, "alice", "tok123", "ref456", []string{"STUDENT"})
	rec.set(http.StatusOK, `[]`)
	var events []model.Event
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/events", nil, &events))
	require.Equal(t, "Bearer tok123", rec.last().Get("Authorization"))

	rec.set(http.StatusUnauthorized, ``)
	err := c.DoJSON(ctx, http.MethodGet, "/profiles/me", nil, nil)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	got := store.Get()
	require.False(t, got.IsAuthenticated)
	require.Nil(t, got.Token)
	require.Nil(t, got.ProfileID)
	require.Equal(t, []string{"/login"}, nav.Paths())

	rec.set(http.StatusOK, `[]`)
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/events", nil, nil))
	require.Empty(t, rec.last().Values("Authorization"))
}

func TestIdentityHeaders(t *testing.T) {
	t.Parallel()

	c, store, rec, _ := setup(t)
	ctx := context.Background()

	err := c.DoJSON(ctx, http.MethodGet, "/events/7", nil, nil, WithProfileID())
	require.ErrorIs(t, err, errs.ErrMissingProfileID)
	err = c.DoJSON(ctx, http.MethodDelete, "/events/7", nil, nil, WithOrganizerID())
	require.ErrorIs(t, err, errs.ErrMissingProfileID)
	require.Equal(t, 0, rec.count(), "identity failures happen before any I/O")

	store.Login(42, "alice", "tok123", "ref456", nil)
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/events/7", nil, nil, WithProfileID()))
	require.Equal(t, "42", rec.last().Get(ProfileIDHeader))

	require.NoError(t, c.DoJSON(ctx, http.MethodDelete, "/events/7", nil, nil, WithOrganizerID()))
	require.Equal(t, "42", rec.last().Get(OrganizerIDHeader))

	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/x", nil, nil, WithProfileIDValue(9)))
	require.Equal(t, "9", rec.last().Get(ProfileIDHeader))
}

func TestQueryOptions(t *testing.T) {
	t.Parallel()

	c, _, rec, _ := setup(t)
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/jobs", nil, nil,
		WithQueryInt("page", 0), WithQueryInt("size", 10), WithQuery("title", ""), WithQuery("company", "acme")))

	rec.mu.Lock()
	q := rec.queries[len(rec.queries)-1]
	rec.mu.Unlock()
	require.Equal(t, "company=acme&page=0&size=10", q)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	c, _, rec, _ := setup(t)

	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/a", nil, nil))
	id := rec.last().Get(RequestIDHeader)
	_, err := uuid.FromString(id)
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "fixed-id")
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/a", nil, nil))
	require.Equal(t, "fixed-id", rec.last().Get(RequestIDHeader))
}

func TestDoJSON_DecodesBodies(t *testing.T) {
	t.Parallel()

	c, _, rec, _ := setup(t)
	ctx := context.Background()

	rec.set(http.StatusOK, `{"content":[{"id":1,"title":"Go dev"}],"totalElements":1,"last":true}`)
	var page model.Page[model.Job]
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/jobs", nil, &page))
	require.Len(t, page.Content, 1)
	require.Equal(t, "Go dev", page.Content[0].Title)

	rec.set(http.StatusOK, `Followed successfully`)
	var msg string
	require.NoError(t, c.DoJSON(ctx, http.MethodPost, "/x", nil, &msg))
	require.Equal(t, "Followed successfully", msg)

	rec.set(http.StatusOK, `{broken`)
	var v map[string]any
	require.Error(t, c.DoJSON(ctx, http.MethodGet, "/x", nil, &v))
}

func TestTransportError_Propagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("dial refused")
	m := metrics.New(nil)
	store := newStore(t)
	store.Login(1, "u", "t", "r", nil)
	nav := &Recorder{}
	c, err := New("http://backend.invalid/api/v1", store,
		WithNavigator(nav),
		WithMetrics(m),
		WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) { return nil, boom })))
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil)
	require.ErrorIs(t, err, boom)
	require.True(t, store.Get().IsAuthenticated)
	require.Empty(t, nav.Paths())
	require.Equal(t, 1.0, counterValue(t, m.TransportErrorsTotal.WithLabelValues(http.MethodGet)))
}

func TestLoggingAndMetricsHooks(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New(nil)
	c, store, rec, _ := setup(t, WithLogger(zap.New(core)), WithMetrics(m))
	store.Login(1, "u", "secret-token", "r", nil)

	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil))
	rec.set(http.StatusUnauthorized, ``)
	_ = c.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil)

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 2)
	ctx := entries[0].ContextMap()
	require.Equal(t, "GET", ctx["method"])
	require.Equal(t, "/api/v1/events", ctx["path"])
	require.EqualValues(t, 200, ctx["status"])
	for _, e := range entries {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				require.NotContains(t, s, "secret-token")
			}
		}
	}

	require.Equal(t, 1.0, counterValue(t, m.RequestsTotal.WithLabelValues("GET", "200")))
	require.Equal(t, 1.0, counterValue(t, m.RequestsTotal.WithLabelValues("GET", "401")))
	require.Equal(t, 1.0, counterValue(t, m.UnauthorizedTotal))
}

func TestConcurrent401s_EachNavigates(t *testing.T) {
	t.Parallel()

	c, store, rec, _ := setup(t)
	var navs atomic.Int32
	c2, err := New(c.BaseURL(), store, WithTransport(http.DefaultTransport),
		WithNavigator(NavigatorFunc(func(string) { navs.Add(1) })))
	require.NoError(t, err)

	store.Login(1, "u", "t", "r", nil)
	rec.set(http.StatusUnauthorized, ``)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c2.DoJSON(context.Background(), http.MethodGet, "/events", nil, nil)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(5), navs.Load(), "one navigation per 401 response")
	require.Equal(t, model.Session{}, store.Get())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type writer interface{ Write(*dto.Metric) error }

func counterValue(t *testing.T, c writer) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
