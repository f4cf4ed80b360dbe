package client

import (
	"context"
	"fmt"

	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/ui/types"
)

// ListEvents returns the events in the order the API returns them
func (c *Client) ListEvents(ctx context.Context) ([]types.Event, error) {
	return Get[[]types.Event](ctx, c, "/events", "", schemas.EventList)
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*types.Event, error) {
	return Get[*types.Event](ctx, c, fmt.Sprintf("/events/%d", id), "", schemas.Event)
}

func (c *Client) CreateEvent(ctx context.Context, token string, payload types.CreateEventPayload) (*types.Event, error) {
	return Post[*types.Event](ctx, c, "/events", payload, token, schemas.Event)
}

func (c *Client) UpdateEvent(ctx context.Context, token string, id int64, payload types.CreateEventPayload) (*types.Event, error) {
	return Put[*types.Event](ctx, c, fmt.Sprintf("/events/%d", id), payload, token, schemas.Event)
}

func (c *Client) DeleteEvent(ctx context.Context, token string, id int64) (*types.MessageResponse, error) {
	return Delete[*types.MessageResponse](ctx, c, fmt.Sprintf("/events/%d", id), token, schemas.Message)
}

// ApproveEvent marks an event as approved (admin only). The API expects an empty JSON object as the body
func (c *Client) ApproveEvent(ctx context.Context, token string, id int64) (*types.Event, error) {
	return Patch[*types.Event](ctx, c, fmt.Sprintf("/events/%d/approve", id), struct{}{}, token, schemas.Event)
}
