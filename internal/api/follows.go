package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/model"
)

func (c *Client) followsPath(suffix string) (string, int64, error) {
	pid, ok := c.profileID()
	if !ok {
		return "", 0, errs.ErrMissingProfileID
	}
	return "/profiles/" + id(pid) + "/follows" + suffix, pid, nil
}

// Follow makes the logged-in profile follow target.
func (c *Client) Follow(ctx context.Context, target int64) error {
	path, pid, err := c.followsPath("/" + id(target))
	if err != nil {
		return err
	}
	if err := c.gw.DoJSON(ctx, http.MethodPost, path, nil, nil, gateway.WithProfileIDValue(pid)); err != nil {
		return fmt.Errorf("follow %d: %w", target, err)
	}
	return nil
}

// Unfollow removes the follow relation to target.
func (c *Client) Unfollow(ctx context.Context, target int64) error {
	path, pid, err := c.followsPath("/" + id(target))
	if err != nil {
		return err
	}
	if err := c.gw.DoJSON(ctx, http.MethodDelete, path, nil, nil, gateway.WithProfileIDValue(pid)); err != nil {
		return fmt.Errorf("unfollow %d: %w", target, err)
	}
	return nil
}

// FollowingIDs lists the profile ids the logged-in profile follows.
func (c *Client) FollowingIDs(ctx context.Context) ([]int64, error) {
	path, pid, err := c.followsPath("/following/ids")
	if err != nil {
		return nil, err
	}
	var out []int64
	if err := c.getList(ctx, path, &out, gateway.WithProfileIDValue(pid)); err != nil {
		return nil, fmt.Errorf("following: %w", err)
	}
	return out, nil
}

// ConnectionStatus reports CONNECTED, FOLLOWED or NONE for target.
func (c *Client) ConnectionStatus(ctx context.Context, target int64) (string, error) {
	path, pid, err := c.followsPath("/status/" + id(target))
	if err != nil {
		return "", err
	}
	var out string
	if err := c.getList(ctx, path, &out, gateway.WithProfileIDValue(pid)); err != nil {
		return "", fmt.Errorf("connection status %d: %w", target, err)
	}
	if out == "" {
		out = model.ConnectionNone
	}
	return out, nil
}

// Followers pages through profiles following the logged-in profile.
func (c *Client) Followers(ctx context.Context, page, size int) (model.Page[model.Profile], error) {
	var out model.Page[model.Profile]
	path, pid, err := c.followsPath("/followers")
	if err != nil {
		return out, err
	}
	opts := append(paging(page, size), gateway.WithProfileIDValue(pid))
	if err := c.getList(ctx, path, &out, opts...); err != nil {
		return out, fmt.Errorf("followers: %w", err)
	}
	return out, nil
}
