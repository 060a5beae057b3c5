package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
)

type eventListResponse struct {
	Events []domain.Event `json:"events"`
	Total  int            `json:"total"`
}

type eventResponse struct {
	Event *domain.Event `json:"event"`
}

type registrationsResponse struct {
	Registrations []domain.Registration `json:"registrations"`
}

// List fetches the authenticated user's events and the server total.
func (c *Client) List(ctx context.Context) ([]domain.Event, int, error) {
	return c.listEvents(ctx, "/events", "events.list", false)
}

// ListPublic fetches the public landing listing without authentication.
func (c *Client) ListPublic(ctx context.Context) ([]domain.Event, int, error) {
	return c.listEvents(ctx, "/events/public", "events.list_public", true)
}

func (c *Client) listEvents(ctx context.Context, path, endpoint string, noAuth bool) ([]domain.Event, int, error) {
	var out eventListResponse
	err := c.doJSON(ctx, request{
		method:   http.MethodGet,
		path:     path,
		endpoint: endpoint,
		noAuth:   noAuth,
	}, &out)
	if err != nil {
		return nil, 0, err
	}
	total := out.Total
	if total == 0 {
		total = len(out.Events)
	}
	return out.Events, total, nil
}

// Get fetches a single event by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.Event, error) {
	return c.getEvent(ctx, "/events/"+url.PathEscape(id), "events.get", false)
}

// GetPublic fetches a single event on the no-auth path used by the
// registration page.
func (c *Client) GetPublic(ctx context.Context, id string) (*domain.Event, error) {
	return c.getEvent(ctx, "/events/public/"+url.PathEscape(id), "events.get_public", true)
}

func (c *Client) getEvent(ctx context.Context, path, endpoint string, noAuth bool) (*domain.Event, error) {
	var out eventResponse
	err := c.doJSON(ctx, request{
		method:   http.MethodGet,
		path:     path,
		endpoint: endpoint,
		noAuth:   noAuth,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, fmt.Errorf("%s: %w", endpoint, domain.ErrNotFound)
	}
	return out.Event, nil
}

// Create posts a multipart payload: an optional "logo" file part plus a
// "data" part holding the JSON metadata block. The content type comes from
// the multipart writer; a JSON content type is never set here.
func (c *Client) Create(ctx context.Context, in ports.CreateEventInput, logo *ports.LogoUpload) (*domain.Event, error) {
	body, contentType, err := encodeCreatePayload(in, logo)
	if err != nil {
		return nil, err
	}
	var out eventResponse
	err = c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/events",
		endpoint:    "events.create",
		body:        body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, &domain.APIError{Message: "create event: empty response"}
	}
	return out.Event, nil
}

func encodeCreatePayload(in ports.CreateEventInput, logo *ports.LogoUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if logo != nil {
		fw, err := w.CreateFormFile("logo", logo.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create event: logo part: %w", err)
		}
		if _, err := io.Copy(fw, logo.Content); err != nil {
			return nil, "", fmt.Errorf("create event: read logo: %w", err)
		}
	}

	data, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("create event: encode metadata: %w", err)
	}
	if err := w.WriteField("data", string(data)); err != nil {
		return nil, "", fmt.Errorf("create event: data part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("create event: finalize payload: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// Update replaces the mutable fields of an event.
func (c *Client) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out eventResponse
	err = c.doJSON(ctx, request{
		method:      http.MethodPut,
		path:        "/events/" + url.PathEscape(id),
		endpoint:    "events.update",
		body:        body,
		contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, &domain.APIError{Message: "update event: empty response"}
	}
	return out.Event, nil
}

// Delete removes an event.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		method:   http.MethodDelete,
		path:     "/events/" + url.PathEscape(id),
		endpoint: "events.delete",
	}, nil)
}

// Registrations fetches the attendee snapshot for an event.
func (c *Client) Registrations(ctx context.Context, eventID string) ([]domain.Registration, error) {
	var out registrationsResponse
	err := c.doJSON(ctx, request{
		method:   http.MethodGet,
		path:     "/events/" + url.PathEscape(eventID) + "/registrations",
		endpoint: "events.registrations",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Registrations, nil
}

var _ ports.EventGateway = (*Client)(nil)
