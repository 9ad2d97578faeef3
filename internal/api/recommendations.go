package api

import (
	"context"
	"fmt"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/model"
)

// RecommendedEvents ranks events for the logged-in profile.
func (c *Client) RecommendedEvents(ctx context.Context, limit int) ([]model.RecommendedEvent, error) {
	pid, ok := c.profileID()
	if !ok {
		return nil, errs.ErrMissingProfileID
	}
	var out []model.RecommendedEvent
	if err := c.getList(ctx, "/recommendations/events/"+id(pid), &out, limitOpt(limit)); err != nil {
		return nil, fmt.Errorf("recommended events: %w", err)
	}
	return out, nil
}

// RecommendedUsers ranks other profiles for the logged-in profile.
func (c *Client) RecommendedUsers(ctx context.Context, limit int) ([]model.RecommendedUser, error) {
	pid, ok := c.profileID()
	if !ok {
		return nil, errs.ErrMissingProfileID
	}
	var out []model.RecommendedUser
	if err := c.getList(ctx, "/recommendations/users/"+id(pid), &out, limitOpt(limit)); err != nil {
		return nil, fmt.Errorf("recommended users: %w", err)
	}
	return out, nil
}
