// Package api is the typed client for the ATNS REST backend. Every call goes
// through the gateway, so every call carries the bearer token and every 401
// ends the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/session"
	"go.uber.org/zap"
)

// Default paging and limits, matching the backend's own defaults.
const (
	DefaultPageSize = 20
	DefaultLimit    = 10
)

// Client wraps a gateway with one method per backend operation.
type Client struct {
	gw    *gateway.Client
	store session.Manager
	log   *zap.Logger
}

// New builds a Client. log may be nil.
func New(gw *gateway.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{gw: gw, store: gw.Session(), log: log}
}

// Gateway returns the underlying gateway for raw calls.
func (c *Client) Gateway() *gateway.Client { return c.gw }

func (c *Client) profileID() (int64, bool) {
	s := c.store.Get()
	if s.ProfileID == nil {
		return 0, false
	}
	return *s.ProfileID, true
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func paging(page, size int) []gateway.CallOption {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return []gateway.CallOption{gateway.WithQueryInt("page", page), gateway.WithQueryInt("size", size)}
}

func limitOpt(limit int) gateway.CallOption {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return gateway.WithQueryInt("limit", limit)
}

// listOrPage accepts either a bare JSON array or a paged envelope; some list
// endpoints changed shape between backend versions.
type listOrPage[T any] struct {
	Items []T
}

func (l *listOrPage[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &l.Items)
	}
	var env struct {
		Content []T `json:"content"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("neither list nor page: %w", err)
	}
	l.Items = env.Content
	return nil
}

func (c *Client) getList(ctx context.Context, path string, out any, opts ...gateway.CallOption) error {
	return c.gw.DoJSON(ctx, http.MethodGet, path, nil, out, opts...)
}
