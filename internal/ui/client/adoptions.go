package client

import (
	"context"
	"fmt"

	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/ui/types"
)

// CreateAdoption requests the adoption of a pet on behalf of the token holder
func (c *Client) CreateAdoption(ctx context.Context, token string, petID int64) (*types.AdoptionRequest, error) {
	payload := types.CreateAdoptionPayload{PetID: petID}
	return Post[*types.AdoptionRequest](ctx, c, "/adoptions", payload, token, schemas.Adoption)
}

// ListAdoptions returns the adoption requests visible to the token holder
func (c *Client) ListAdoptions(ctx context.Context, token string) ([]types.AdoptionRequest, error) {
	return Get[[]types.AdoptionRequest](ctx, c, "/adoptions", token, schemas.AdoptionList)
}

func (c *Client) UpdateAdoptionStatus(ctx context.Context, token string, id int64, status types.RequestStatus) (*types.AdoptionRequest, error) {
	payload := types.UpdateAdoptionPayload{Status: status}
	return Patch[*types.AdoptionRequest](ctx, c, fmt.Sprintf("/adoptions/%d", id), payload, token, schemas.Adoption)
}

func (c *Client) DeleteAdoption(ctx context.Context, token string, id int64) (*types.MessageResponse, error) {
	return Delete[*types.MessageResponse](ctx, c, fmt.Sprintf("/adoptions/%d", id), token, schemas.Message)
}
