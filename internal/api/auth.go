package api

import (
	"context"
	"errors"
)

// Credentials is the owner login/registration form.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Persisting the token is
// the caller's job.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	res := &tokenResponse{}
	if err := c.post(ctx, "/auth/login", creds, res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("api: login response carried no token")
	}
	return res.Token, nil
}

// Register creates an owner account and returns the issued token.
func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	res := &tokenResponse{}
	if err := c.post(ctx, "/auth/register", creds, res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("api: register response carried no token")
	}
	return res.Token, nil
}
