package client

import (
	"context"
	"fmt"

	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/ui/types"
)

// ListPets returns every pet known to the API
func (c *Client) ListPets(ctx context.Context) ([]types.Pet, error) {
	return Get[[]types.Pet](ctx, c, "/pets", "", schemas.PetList)
}

func (c *Client) GetPet(ctx context.Context, id int64) (*types.Pet, error) {
	return Get[*types.Pet](ctx, c, fmt.Sprintf("/pets/%d", id), "", schemas.Pet)
}

// CreatePet registers a new pet owned by the user the token belongs to
func (c *Client) CreatePet(ctx context.Context, token string, payload types.CreatePetPayload) (*types.Pet, error) {
	return Post[*types.Pet](ctx, c, "/pets", payload, token, schemas.Pet)
}

// UpdatePet sends a partial update, only the non-nil fields of payload are changed
func (c *Client) UpdatePet(ctx context.Context, token string, id int64, payload types.UpdatePetPayload) (*types.Pet, error) {
	return Put[*types.Pet](ctx, c, fmt.Sprintf("/pets/%d", id), payload, token, schemas.Pet)
}

func (c *Client) DeletePet(ctx context.Context, token string, id int64) (*types.MessageResponse, error) {
	return Delete[*types.MessageResponse](ctx, c, fmt.Sprintf("/pets/%d", id), token, schemas.Message)
}
