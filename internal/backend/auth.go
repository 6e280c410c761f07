// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"errors"
	"net/http"
)

// User is the profile owned by the backend. The client only displays it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DisplayName prefers the name and falls back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// LoginResponse is the body of a successful POST /api/auth/login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. No token is issued; the operator logs in afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	var u User
	err := c.getData(ctx, http.MethodPost, c.endpoints.Register, registerRequest{Name: name, Email: email, Password: password}, &u)
	return u, err
}

// Login exchanges credentials for an access token and the user profile.
// It does not store anything; persisting the credential is the session's job.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	if err := c.getData(ctx, http.MethodPost, c.endpoints.Login, loginRequest{Email: email, Password: password}, &out); err != nil {
		return LoginResponse{}, err
	}
	if out.AccessToken == "" {
		return LoginResponse{}, errors.New("login response carried no access token")
	}
	return out, nil
}

// Me fetches the profile of the current bearer token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.getData(ctx, http.MethodGet, c.endpoints.Me, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
