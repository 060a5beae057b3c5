package ports

import (
	"context"
	"io"

	"github.com/hohoindia/event-client/internal/core/domain"
)

// SignupInput carries the profile fields posted to /auth/signup.
type SignupInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Designation string `json:"designation" validate:"required"`
}

// AuthResult is the backend's answer to a successful login or signup.
type AuthResult struct {
	User  *domain.UserProfile
	Token string
}

// AuthGateway wraps the authentication endpoints.
type AuthGateway interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// CreateEventInput is the JSON metadata block of the multipart create
// payload. The optional logo travels beside it as a separate file part.
type CreateEventInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Venue       string `json:"venue" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
}

// LogoUpload is the binary logo part of an event create payload.
type LogoUpload struct {
	Filename string
	Content  io.Reader
}

// UpdateEventInput carries a partial event update; nil fields are left
// untouched server-side.
type UpdateEventInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Venue       *string `json:"venue,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
}

// EventGateway wraps the event endpoints. List and ListPublic also return
// the server-reported total, which may exceed the page length.
type EventGateway interface {
	List(ctx context.Context) ([]domain.Event, int, error)
	ListPublic(ctx context.Context) ([]domain.Event, int, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	GetPublic(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, in CreateEventInput, logo *LogoUpload) (*domain.Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	Registrations(ctx context.Context, eventID string) ([]domain.Registration, error)
}

// RegistrationInput is the public registration form.
type RegistrationInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// RegistrationGateway wraps the no-auth registration endpoint and the
// spreadsheet export stream.
type RegistrationGateway interface {
	Register(ctx context.Context, eventID string, in RegistrationInput) (*domain.Registration, error)
	Export(ctx context.Context, eventID string) (io.ReadCloser, error)
}
