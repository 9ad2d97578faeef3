package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/model"
)

// Events lists events visible to the logged-in profile.
func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	var out listOrPage[model.Event]
	if err := c.getList(ctx, "/events", &out, gateway.WithProfileID()); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return out.Items, nil
}

// Event fetches one event.
func (c *Client) Event(ctx context.Context, eventID int64) (model.Event, error) {
	var ev model.Event
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/events/"+id(eventID), nil, &ev, gateway.WithProfileID()); err != nil {
		return ev, fmt.Errorf("event %d: %w", eventID, err)
	}
	return ev, nil
}

// CreateEvent creates an event organised by the logged-in profile.
func (c *Client) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if pid, ok := c.profileID(); ok && ev.OrganizerProfileID == nil {
		ev.OrganizerProfileID = &pid
	}
	var out model.Event
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/events", ev, &out, gateway.WithOrganizerID()); err != nil {
		return out, fmt.Errorf("create event: %w", err)
	}
	return out, nil
}

// UpdateEvent replaces an event the logged-in profile organises.
func (c *Client) UpdateEvent(ctx context.Context, eventID int64, ev model.Event) (model.Event, error) {
	body := ev.AsUpdate()
	body.EventID = &eventID
	var out model.Event
	if err := c.gw.DoJSON(ctx, http.MethodPut, "/events/"+id(eventID), body, &out, gateway.WithOrganizerID()); err != nil {
		return out, fmt.Errorf("update event %d: %w", eventID, err)
	}
	return out, nil
}

// DeleteEvent removes an event the logged-in profile organises.
func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	if err := c.gw.DoJSON(ctx, http.MethodDelete, "/events/"+id(eventID), nil, nil, gateway.WithOrganizerID()); err != nil {
		return fmt.Errorf("delete event %d: %w", eventID, err)
	}
	return nil
}

// ToggleEventStatus flips an event between active and inactive.
func (c *Client) ToggleEventStatus(ctx context.Context, eventID int64) (model.Event, error) {
	var out model.Event
	if err := c.gw.DoJSON(ctx, http.MethodPatch, "/events/"+id(eventID)+"/status", nil, &out, gateway.WithOrganizerID()); err != nil {
		return out, fmt.Errorf("toggle event %d: %w", eventID, err)
	}
	return out, nil
}

// MyEvents pages through events the logged-in profile organises.
func (c *Client) MyEvents(ctx context.Context, page, size int) (model.Page[model.Event], error) {
	return c.eventPage(ctx, "/events/myevents", append(paging(page, size), gateway.WithOrganizerID()))
}

// UpcomingEvents pages through events that have not started yet.
func (c *Client) UpcomingEvents(ctx context.Context, page, size int) (model.Page[model.Event], error) {
	return c.eventPage(ctx, "/events/upcoming", append(paging(page, size), gateway.WithProfileID()))
}

// EventsByOrganizer pages through events organised by another profile.
func (c *Client) EventsByOrganizer(ctx context.Context, organizerID int64, page, size int) (model.Page[model.Event], error) {
	return c.eventPage(ctx, "/events/organizers/"+id(organizerID), append(paging(page, size), gateway.WithProfileID()))
}

// SearchEvents runs a free-text event search.
func (c *Client) SearchEvents(ctx context.Context, query string, page, size int) (model.Page[model.Event], error) {
	return c.eventPage(ctx, "/events/search", append(paging(page, size), gateway.WithQuery("query", query)))
}

func (c *Client) eventPage(ctx context.Context, path string, opts []gateway.CallOption) (model.Page[model.Event], error) {
	var out model.Page[model.Event]
	if err := c.getList(ctx, path, &out, opts...); err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
