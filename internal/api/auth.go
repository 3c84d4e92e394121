package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/haymini/hayctl/internal/models"
)

// LoginResult is the discriminated success payload of the login
// endpoint.
type LoginResult struct {
	Status string      `json:"status"`
	Token  string      `json:"token"`
	User   models.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Any rejection by the
// backend, including a 2xx body without status "success", is reported
// as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	result := &LoginResult{}
	err := c.do(ctx, c.authClient, http.MethodPost, "/auth/login", &loginRequest{
		Email:    email,
		Password: password,
	}, result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// The login endpoint never signals an expired session; a
			// 401 here means the credentials were wrong.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if result.Status != "success" || result.Token == "" {
		return nil, ErrInvalidCredentials
	}

	return result, nil
}

// Me validates the current bearer token and returns the user it
// belongs to. A 401 surfaces as ErrUnauthorized; every other failure
// as ErrUnavailable.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, c.authClient, http.MethodGet, "/auth/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout invalidates the current bearer token on the backend. Callers
// treat failures as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, c.authClient, http.MethodPost, "/auth/logout", nil, nil)
}
