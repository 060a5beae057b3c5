package qrcard

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hohoindia/event-client/internal/core/domain"
)

func sampleEvent() domain.Event {
	return domain.Event{
		ID:              "ev1",
		Title:           "Tech Summit 2025",
		Date:            "2025-09-01",
		Venue:           "Hall A, International Convention Centre, Hyderabad",
		RegistrationURL: "https://events.example.com/register/ev1",
	}
}

func TestCompose_ProducesFixedCanvasPNG(t *testing.T) {
	ev := sampleEvent()
	code, err := RegistrationCode(ev.RegistrationURL)
	require.NoError(t, err)

	card, err := Compose(ev, code)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(card))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 600, bounds.Dx())
	assert.Equal(t, 800, bounds.Dy())

	// The ground is white; the corner never carries text or code.
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	// The code region must not be blank.
	blank := true
	for x := 160; x < 440 && blank; x += 4 {
		for y := 190; y < 470 && blank; y += 4 {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr != 0xffff || cg != 0xffff || cb != 0xffff {
				blank = false
			}
		}
	}
	assert.False(t, blank, "scannable code must be drawn mid-canvas")
}

func TestCompose_NilCodeIsImageLoadError(t *testing.T) {
	_, err := Compose(sampleEvent(), nil)

	var ile *domain.ImageLoadError
	require.ErrorAs(t, err, &ile)
}

func TestCompose_InvalidDateDoesNotFail(t *testing.T) {
	ev := sampleEvent()
	ev.Date = "not-a-date"
	code, err := RegistrationCode(ev.RegistrationURL)
	require.NoError(t, err)

	_, err = Compose(ev, code)
	assert.NoError(t, err, "an invalid date renders its error label, it never throws")
}

func TestRegistrationCode_EmptyURL(t *testing.T) {
	_, err := RegistrationCode("")

	var ile *domain.ImageLoadError
	require.ErrorAs(t, err, &ile)
}

func TestWrapText(t *testing.T) {
	fs, err := loadFaces()
	require.NoError(t, err)

	assert.Equal(t, []string{""}, wrapText(fs.venue, "", 560))
	assert.Equal(t, []string{"Hall A"}, wrapText(fs.venue, "Hall A", 560))

	long := "International Convention Centre Complex Near Hitech City Madhapur Hyderabad Telangana India"
	lines := wrapText(fs.venue, long, 560)
	assert.Greater(t, len(lines), 1, "long venues must wrap")
	for _, line := range lines {
		assert.NotEmpty(t, line)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Tech_Summit_2025-Registration-QR.png", FileName("Tech Summit 2025"))
	assert.Equal(t, "D_j__Vu__Night_-Registration-QR.png", FileName("Déjà Vu: Night!"))
}
