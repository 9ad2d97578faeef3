package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/and161185/atns-client/internal/model"
)

var dobLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02.01.2006",
}

// NormalizeDate returns s as YYYY-MM-DD. Empty input stays empty.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", s)
}

func normalizeProfile(p model.Profile) (model.Profile, error) {
	dob, err := NormalizeDate(p.DateOfBirth)
	if err != nil {
		return p, fmt.Errorf("date of birth: %w", err)
	}
	p.DateOfBirth = dob
	return p, nil
}

// Me fetches the logged-in user's profile.
func (c *Client) Me(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/profiles/me", nil, &p); err != nil {
		return p, fmt.Errorf("my profile: %w", err)
	}
	return p, nil
}

// Profile fetches a profile by id.
func (c *Client) Profile(ctx context.Context, profileID int64) (model.Profile, error) {
	var p model.Profile
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/profiles/"+id(profileID), nil, &p); err != nil {
		return p, fmt.Errorf("profile %d: %w", profileID, err)
	}
	return p, nil
}

// Profiles lists every profile.
func (c *Client) Profiles(ctx context.Context) ([]model.Profile, error) {
	var out []model.Profile
	if err := c.getList(ctx, "/profiles", &out); err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	return out, nil
}

// CreateProfile creates the logged-in user's profile.
func (c *Client) CreateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	p, err := normalizeProfile(p)
	if err != nil {
		return p, err
	}
	var out model.Profile
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/profiles", p, &out); err != nil {
		return out, fmt.Errorf("create profile: %w", err)
	}
	return out, nil
}

// UpdateProfile replaces the profile with the given id.
func (c *Client) UpdateProfile(ctx context.Context, profileID int64, p model.Profile) (model.Profile, error) {
	p, err := normalizeProfile(p)
	if err != nil {
		return p, err
	}
	var out model.Profile
	if err := c.gw.DoJSON(ctx, http.MethodPut, "/profiles/"+id(profileID), p, &out); err != nil {
		return out, fmt.Errorf("update profile %d: %w", profileID, err)
	}
	return out, nil
}

// MySkills lists the logged-in user's skills.
func (c *Client) MySkills(ctx context.Context) ([]model.Skill, error) {
	var out []model.Skill
	if err := c.getList(ctx, "/profiles/me/skills", &out); err != nil {
		return nil, fmt.Errorf("my skills: %w", err)
	}
	return out, nil
}
