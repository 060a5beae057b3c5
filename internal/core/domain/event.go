package domain

import "time"

// Speaker is a presenter attached to an event. Speakers have no lifecycle
// of their own; they live and die with their event.
type Speaker struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// Organizer identifies who created an event, as reported by the backend.
type Organizer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Event is the core aggregate of the client. Date is kept as the raw string
// the backend returned: whether it parses is decided per render (see
// Classify), never cached on the entity.
type Event struct {
	ID              string         `json:"_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Date            string         `json:"date"`
	Time            string         `json:"time,omitempty"`
	Venue           string         `json:"venue"`
	Capacity        int            `json:"capacity"`
	LogoURL         string         `json:"logoUrl,omitempty"`
	Speakers        []Speaker      `json:"speakers,omitempty"`
	RegistrationURL string         `json:"registrationUrl"`
	Organizer       *Organizer     `json:"organizer,omitempty"`
	Registrations   []Registration `json:"registrations,omitempty"`
}

// Registration is a read-only snapshot of an attendee sign-up. It is created
// server-side; the client only ever appends one optimistically right after
// its own successful public submission.
type Registration struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// RegistrationCount returns how many attendees the backend reported inline
// on the event, for listing badges.
func (e Event) RegistrationCount() int {
	return len(e.Registrations)
}

// OrganizerName resolves a display name for the event creator, falling back
// to a generic label when the backend sent nothing usable.
func (e Event) OrganizerName() string {
	if e.Organizer != nil {
		if e.Organizer.Name != "" {
			return e.Organizer.Name
		}
		if e.Organizer.Email != "" {
			return e.Organizer.Email
		}
	}
	return "Event Manager"
}
