package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
)

func TestStruct_CollectsFieldMessages(t *testing.T) {
	v := New()

	err := v.Struct(ports.CreateEventInput{Capacity: -1})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "title is required")
	assert.Contains(t, ve.Message, "venue is required")
	assert.Contains(t, ve.Message, "capacity must be greater than 0")
}

func TestStruct_EmailTag(t *testing.T) {
	v := New()

	err := v.Struct(ports.RegistrationInput{Name: "Ravi", Email: "nope", Phone: "9876543210"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "email must be a valid email")
}

func TestStruct_ValidInputPasses(t *testing.T) {
	v := New()

	err := v.Struct(ports.CreateEventInput{
		Title:       "Summit",
		Description: "desc",
		Date:        "2025-09-01",
		Time:        "18:30",
		Venue:       "Hall A",
		Capacity:    10,
	})
	assert.NoError(t, err)
}
