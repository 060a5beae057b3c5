package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
	"github.com/hohoindia/event-client/internal/metrics"
	"github.com/hohoindia/event-client/internal/validate"
)

// SubmitPhase is the public registration attempt's state machine:
// idle -> submitting -> {succeeded | failed}. failed returns to an editable
// form with the entered values retained; succeeded clears them.
type SubmitPhase string

const (
	PhaseIdle       SubmitPhase = "idle"
	PhaseSubmitting SubmitPhase = "submitting"
	PhaseSucceeded  SubmitPhase = "succeeded"
	PhaseFailed     SubmitPhase = "failed"
)

// RegistrationStore drives the no-auth public registration flow and the
// registration export download. When an EventStore is attached, a
// successful submission is optimistically appended to its registrations
// snapshot.
type RegistrationStore struct {
	gateway ports.RegistrationGateway
	events  *EventStore // optional; nil outside an authenticated session
	val     *validate.Validator
	log     zerolog.Logger

	downloadDir string

	mu          sync.Mutex
	phase       SubmitPhase
	form        ports.RegistrationInput
	submitErr   error
	isExporting bool
	exportErr   error
}

func NewRegistrationStore(gateway ports.RegistrationGateway, events *EventStore, downloadDir string, log zerolog.Logger) *RegistrationStore {
	return &RegistrationStore{
		gateway:     gateway,
		events:      events,
		val:         validate.New(),
		log:         log,
		downloadDir: downloadDir,
		phase:       PhaseIdle,
	}
}

// SetForm records the attendee's entered values. Ignored while a submit is
// in flight (the form is disabled for the duration).
func (s *RegistrationStore) SetForm(in ports.RegistrationInput) {
	s.mu.Lock()
	if s.phase != PhaseSubmitting {
		s.form = in
	}
	s.mu.Unlock()
}

// Form returns the retained form values.
func (s *RegistrationStore) Form() ports.RegistrationInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Phase returns the current submit phase.
func (s *RegistrationStore) Phase() SubmitPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the last submit error, or nil.
func (s *RegistrationStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitErr
}

// Submit sends the retained form to the public registration endpoint.
// A submit while another is in flight is rejected (duplicate-submission
// guard). Failure keeps the form values for resubmission; success clears
// them and appends the confirmed registration to the attached event store.
func (s *RegistrationStore) Submit(ctx context.Context, eventID string) (*domain.Registration, error) {
	s.mu.Lock()
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}
	form := s.form
	s.phase = PhaseSubmitting
	s.submitErr = nil
	s.mu.Unlock()

	if err := s.val.Struct(form); err != nil {
		s.mu.Lock()
		s.phase = PhaseFailed
		s.submitErr = err
		s.mu.Unlock()
		return nil, err
	}

	reg, err := s.gateway.Register(ctx, eventID, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Form values stay put so the attendee can correct and resubmit.
		s.phase = PhaseFailed
		s.submitErr = err
		return nil, err
	}

	if reg == nil {
		reg = &domain.Registration{
			Name:             form.Name,
			Email:            form.Email,
			Phone:            form.Phone,
			RegistrationDate: time.Now(),
		}
	}
	s.phase = PhaseSucceeded
	s.form = ports.RegistrationInput{}
	s.submitErr = nil
	if s.events != nil {
		s.events.AddRegistration(*reg)
	}
	s.log.Info().Str("event_id", eventID).Str("email", reg.Email).Msg("registration submitted")
	return reg, nil
}

// ResetSubmit returns the flow to idle for a fresh attempt, keeping any
// retained form values.
func (s *RegistrationStore) ResetSubmit() {
	s.mu.Lock()
	if s.phase != PhaseSubmitting {
		s.phase = PhaseIdle
		s.submitErr = nil
	}
	s.mu.Unlock()
}

// IsExporting reports whether an export download is in flight.
func (s *RegistrationStore) IsExporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isExporting
}

// ExportErr returns the last export error, or nil.
func (s *RegistrationStore) ExportErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportErr
}

// Export requests the generated spreadsheet and streams it to
// registrations_<eventID>.xlsx under the download directory, returning the
// written path.
func (s *RegistrationStore) Export(ctx context.Context, eventID string) (string, error) {
	s.mu.Lock()
	s.isExporting = true
	s.exportErr = nil
	s.mu.Unlock()

	path, err := s.downloadExport(ctx, eventID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isExporting = false
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		s.exportErr = err
		return "", err
	}
	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("event_id", eventID).Str("path", path).Msg("registrations exported")
	return path, nil
}

func (s *RegistrationStore) downloadExport(ctx context.Context, eventID string) (string, error) {
	body, err := s.gateway.Export(ctx, eventID)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("export: create download dir: %w", err)
	}
	path := filepath.Join(s.downloadDir, fmt.Sprintf("registrations_%s.xlsx", eventID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("export: write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close file: %w", err)
	}
	return path, nil
}
