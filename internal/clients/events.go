package clients

import (
	"context"
	"net/http"
	"net/url"
)

// Events reads event data from the external Events service. Ticketflow
// never mutates events.
type Events struct {
	httpClient
}

func NewEvents(baseURL string) *Events {
	return &Events{newHTTPClient(baseURL)}
}

type EventInfo struct {
	EventID     string `json:"event_id"`
	Title       string `json:"title"`
	OrganizerID string `json:"organizer_id"`
	// Price per ticket in major currency units.
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Capacity int     `json:"capacity"`
}

func (c *Events) GetEvent(ctx context.Context, bearer, eventID string) (*EventInfo, error) {
	var info EventInfo
	path := "/api/v1/events/" + url.PathEscape(eventID)
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetCapacity returns the event capacity, or 0 when the Events service is
// unreachable or reports none. Capacity 0 disables the availability
// preflight.
func (c *Events) GetCapacity(ctx context.Context, bearer, eventID string) int {
	info, err := c.GetEvent(ctx, bearer, eventID)
	if err != nil {
		return 0
	}
	return info.Capacity
}
