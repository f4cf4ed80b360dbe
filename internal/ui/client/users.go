package client

import (
	"context"
	"fmt"

	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/ui/types"
)

// Login authenticates a user with the petly API
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	payload := types.LoginPayload{
		Email:    email,
		Password: password,
	}
	return Post[*types.AuthResponse](ctx, c, "/users/login", payload, "", schemas.AuthResponse)
}

// Register creates a new account. A successful registration also logs the user in
func (c *Client) Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error) {
	payload := types.RegisterPayload{
		Name:     name,
		Email:    email,
		Password: password,
	}
	return Post[*types.AuthResponse](ctx, c, "/users/register", payload, "", schemas.AuthResponse)
}

// ListUsers returns every account (admin only)
func (c *Client) ListUsers(ctx context.Context, token string) ([]types.User, error) {
	return Get[[]types.User](ctx, c, "/users", token, schemas.UserList)
}

func (c *Client) GetUser(ctx context.Context, token string, id int64) (*types.User, error) {
	return Get[*types.User](ctx, c, fmt.Sprintf("/users/%d", id), token, schemas.User)
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, payload types.UpdateUserPayload) (*types.User, error) {
	return Put[*types.User](ctx, c, fmt.Sprintf("/users/%d", id), payload, token, schemas.User)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) (*types.MessageResponse, error) {
	return Delete[*types.MessageResponse](ctx, c, fmt.Sprintf("/users/%d", id), token, schemas.Message)
}
