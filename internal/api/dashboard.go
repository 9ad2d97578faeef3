package api

import (
	"context"

	"github.com/and161185/atns-client/internal/model"
	"golang.org/x/sync/errgroup"
)

// Dashboard loads the landing view in parallel. The first failure cancels the
// remaining calls and is returned.
func (c *Client) Dashboard(ctx context.Context, limit int) (model.Dashboard, error) {
	var (
		d       model.Dashboard
		profile model.Profile
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.Me(gctx)
		profile = p
		return err
	})
	g.Go(func() error {
		evs, err := c.RecommendedEvents(gctx, limit)
		d.RecommendedEvents = evs
		return err
	})
	g.Go(func() error {
		users, err := c.RecommendedUsers(gctx, limit)
		d.RecommendedUsers = users
		return err
	})
	g.Go(func() error {
		ids, err := c.FollowingIDs(gctx)
		d.FollowingIDs = ids
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}
	d.Profile = &profile
	return d, nil
}
