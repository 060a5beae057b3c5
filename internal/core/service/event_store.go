package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
	"github.com/hohoindia/event-client/internal/validate"
)

// EventState is the read-only snapshot views render from. Slices are copies;
// mutating them never touches the store.
type EventState struct {
	Events        []domain.Event
	CurrentEvent  *domain.Event
	Registrations []domain.Registration
	TotalEvents   int

	IsLoading  bool
	IsCreating bool
	IsUpdating bool
	IsDeleting bool

	Err       error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// EventStore holds the event collection, the currently viewed event, and
// its registrations. Each operation class tracks its own loading flag and
// error channel, so a create in flight never clobbers the list view's
// state. Superseded fetches are not cancelled: a late resolution still
// commits (see TestEventStore_StaleFetchStillCommits).
type EventStore struct {
	gateway ports.EventGateway
	val     *validate.Validator
	log     zerolog.Logger

	mu    sync.Mutex
	state EventState
}

func NewEventStore(gateway ports.EventGateway, log zerolog.Logger) *EventStore {
	return &EventStore{
		gateway: gateway,
		val:     validate.New(),
		log:     log,
	}
}

// State returns a snapshot of the store.
func (s *EventStore) State() EventState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Events = append([]domain.Event(nil), s.state.Events...)
	snap.Registrations = append([]domain.Registration(nil), s.state.Registrations...)
	if s.state.CurrentEvent != nil {
		ev := *s.state.CurrentEvent
		snap.CurrentEvent = &ev
	}
	return snap
}

// FetchAll replaces the full event collection. On failure the collection is
// cleared rather than left stale.
func (s *EventStore) FetchAll(ctx context.Context) ([]domain.Event, error) {
	return s.fetchList(ctx, s.gateway.List)
}

// FetchAllPublic is FetchAll over the no-auth landing listing.
func (s *EventStore) FetchAllPublic(ctx context.Context) ([]domain.Event, error) {
	return s.fetchList(ctx, s.gateway.ListPublic)
}

func (s *EventStore) fetchList(ctx context.Context, list func(context.Context) ([]domain.Event, int, error)) ([]domain.Event, error) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = nil
	s.mu.Unlock()

	events, total, err := list(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Err = err
		s.state.Events = nil
		return nil, err
	}
	s.state.Events = events
	s.state.TotalEvents = total
	return append([]domain.Event(nil), events...), nil
}

// FetchOne replaces the currently viewed event; on failure it is cleared.
func (s *EventStore) FetchOne(ctx context.Context, id string) (*domain.Event, error) {
	return s.fetchOne(ctx, id, s.gateway.Get)
}

// FetchPublicOne is FetchOne over the no-auth path the registration page
// uses.
func (s *EventStore) FetchPublicOne(ctx context.Context, id string) (*domain.Event, error) {
	return s.fetchOne(ctx, id, s.gateway.GetPublic)
}

func (s *EventStore) fetchOne(ctx context.Context, id string, get func(context.Context, string) (*domain.Event, error)) (*domain.Event, error) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = nil
	s.mu.Unlock()

	event, err := get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Err = err
		s.state.CurrentEvent = nil
		return nil, err
	}
	s.state.CurrentEvent = event
	return event, nil
}

// FetchRegistrations replaces the registrations snapshot for the active
// event; on failure the list is emptied.
func (s *EventStore) FetchRegistrations(ctx context.Context, eventID string) ([]domain.Registration, error) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = nil
	s.mu.Unlock()

	regs, err := s.gateway.Registrations(ctx, eventID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Err = err
		s.state.Registrations = nil
		return nil, err
	}
	s.state.Registrations = regs
	return append([]domain.Registration(nil), regs...), nil
}

// Create validates and submits the multipart payload. On success the new
// event is prepended (most-recent-first) and becomes the current event. An
// id already present is replaced in place instead of duplicated. Only the
// create error channel is touched on failure.
func (s *EventStore) Create(ctx context.Context, in ports.CreateEventInput, logo *ports.LogoUpload) (*domain.Event, error) {
	if err := s.val.Struct(in); err != nil {
		s.mu.Lock()
		s.state.CreateErr = err
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.state.IsCreating = true
	s.state.CreateErr = nil
	s.mu.Unlock()

	event, err := s.gateway.Create(ctx, in, logo)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsCreating = false
	if err != nil {
		s.state.CreateErr = err
		return nil, err
	}

	if i := indexByID(s.state.Events, event.ID); i >= 0 {
		s.state.Events[i] = *event
	} else {
		s.state.Events = append([]domain.Event{*event}, s.state.Events...)
		s.state.TotalEvents++
	}
	s.state.CurrentEvent = event
	s.log.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("event created")
	return event, nil
}

// Update replaces the matching collection entry in place and refreshes the
// current event if it is the one being edited.
func (s *EventStore) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	s.mu.Lock()
	s.state.IsUpdating = true
	s.state.UpdateErr = nil
	s.mu.Unlock()

	event, err := s.gateway.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsUpdating = false
	if err != nil {
		s.state.UpdateErr = err
		return nil, err
	}

	if i := indexByID(s.state.Events, event.ID); i >= 0 {
		s.state.Events[i] = *event
	}
	if s.state.CurrentEvent != nil && s.state.CurrentEvent.ID == event.ID {
		s.state.CurrentEvent = event
	}
	return event, nil
}

// Delete removes the entry by id, clears the current event when it matched,
// and decrements the total with a floor of zero.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.state.IsDeleting = true
	s.state.DeleteErr = nil
	s.mu.Unlock()

	err := s.gateway.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsDeleting = false
	if err != nil {
		s.state.DeleteErr = err
		return err
	}

	if i := indexByID(s.state.Events, id); i >= 0 {
		s.state.Events = append(s.state.Events[:i], s.state.Events[i+1:]...)
	}
	if s.state.CurrentEvent != nil && s.state.CurrentEvent.ID == id {
		s.state.CurrentEvent = nil
	}
	if s.state.TotalEvents > 0 {
		s.state.TotalEvents--
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

// AddRegistration optimistically appends a registration to the current
// snapshot, used right after a successful public submission in the same
// session.
func (s *EventStore) AddRegistration(reg domain.Registration) {
	s.mu.Lock()
	s.state.Registrations = append(s.state.Registrations, reg)
	s.mu.Unlock()
}

// ClearErrors resets every error channel.
func (s *EventStore) ClearErrors() {
	s.mu.Lock()
	s.state.Err = nil
	s.state.CreateErr = nil
	s.state.UpdateErr = nil
	s.state.DeleteErr = nil
	s.mu.Unlock()
}

// ClearCurrentEvent drops the currently viewed event.
func (s *EventStore) ClearCurrentEvent() {
	s.mu.Lock()
	s.state.CurrentEvent = nil
	s.mu.Unlock()
}

// ClearRegistrations drops the registrations snapshot.
func (s *EventStore) ClearRegistrations() {
	s.mu.Lock()
	s.state.Registrations = nil
	s.mu.Unlock()
}

// Reset returns the store to its zero state.
func (s *EventStore) Reset() {
	s.mu.Lock()
	s.state = EventState{}
	s.mu.Unlock()
}

func indexByID(events []domain.Event, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
