package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/and161185/atns-client/internal/model"
)

// Skills lists the skill catalogue.
func (c *Client) Skills(ctx context.Context) ([]model.Skill, error) {
	var out []model.Skill
	if err := c.getList(ctx, "/skills", &out); err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	return out, nil
}

// Skill fetches one skill.
func (c *Client) Skill(ctx context.Context, skillID int64) (model.Skill, error) {
	var out model.Skill
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/skills/"+id(skillID), nil, &out); err != nil {
		return out, fmt.Errorf("skill %d: %w", skillID, err)
	}
	return out, nil
}

// CreateSkill adds a skill to the logged-in profile; the backend answers with
// the updated profile.
func (c *Client) CreateSkill(ctx context.Context, s model.Skill) (model.Profile, error) {
	var out model.Profile
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/skills", s, &out); err != nil {
		return out, fmt.Errorf("create skill: %w", err)
	}
	return out, nil
}

// UpdateSkill replaces a skill.
func (c *Client) UpdateSkill(ctx context.Context, skillID int64, s model.Skill) (model.Skill, error) {
	var out model.Skill
	if err := c.gw.DoJSON(ctx, http.MethodPut, "/skills/"+id(skillID), s, &out); err != nil {
		return out, fmt.Errorf("update skill %d: %w", skillID, err)
	}
	return out, nil
}

// DeleteSkill removes a skill.
func (c *Client) DeleteSkill(ctx context.Context, skillID int64) error {
	if err := c.gw.DoJSON(ctx, http.MethodDelete, "/skills/"+id(skillID), nil, nil); err != nil {
		return fmt.Errorf("delete skill %d: %w", skillID, err)
	}
	return nil
}
