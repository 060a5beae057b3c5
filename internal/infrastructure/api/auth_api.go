package api

import (
	"context"
	"net/http"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
)

// authResponse is the {user, token} envelope of both auth endpoints.
type authResponse struct {
	User  *domain.UserProfile `json:"user"`
	Token string              `json:"token"`
}

// Signup posts the profile fields and returns the fresh session material.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out authResponse
	err = c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/signup",
		endpoint:    "auth.signup",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: out.User, Token: out.Token}, nil
}

// Login exchanges credentials for session material.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var out authResponse
	err = c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		endpoint:    "auth.login",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: out.User, Token: out.Token}, nil
}

var _ ports.AuthGateway = (*Client)(nil)
