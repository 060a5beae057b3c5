package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
)

type registerResponse struct {
	Registration *domain.Registration `json:"registration"`
}

// Register submits a public registration. This path carries no bearer token
// and must stay reachable without a session.
func (c *Client) Register(ctx context.Context, eventID string, in ports.RegistrationInput) (*domain.Registration, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out registerResponse
	err = c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/registrations/" + url.PathEscape(eventID),
		endpoint:    "registrations.register",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}, &out)
	if err != nil {
		return nil, err
	}
	// Some backend versions answer only a confirmation flag; the caller
	// synthesizes the optimistic snapshot in that case.
	return out.Registration, nil
}

// Export streams the generated spreadsheet for an event's registrations.
// The caller owns the returned body.
func (c *Client) Export(ctx context.Context, eventID string) (io.ReadCloser, error) {
	return c.doStream(ctx, request{
		method:   http.MethodGet,
		path:     "/registrations/" + url.PathEscape(eventID) + "/export",
		endpoint: "registrations.export",
	})
}

var _ ports.RegistrationGateway = (*Client)(nil)
