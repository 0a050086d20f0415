package backend

import (
	"context"

	"github.com/campus-community/gateway/internal/models"
)

type loginResp struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResp
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me", token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RegisterPayload mirrors the platform's signup form.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Branch   string `json:"branch,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// Register creates a pending account. Nothing beyond success/failure is
// consumed from the response.
func (c *Client) Register(ctx context.Context, p RegisterPayload) error {
	return c.post(ctx, "/auth/register", "", p, nil)
}

// Verify confirms a pending registration with a one-time code.
func (c *Client) Verify(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.post(ctx, "/auth/verify", "", body, nil)
}
