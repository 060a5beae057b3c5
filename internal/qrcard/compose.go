// Package qrcard composes the shareable registration card: the event's
// scannable code overlaid with enough human-readable context that the
// artifact is self-describing when printed or forwarded.
package qrcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hohoindia/event-client/internal/core/domain"
)

// Fixed-canvas layout, in pixels.
const (
	cardWidth  = 600
	cardHeight = 800
	codeSize   = 300
	codeTop    = 180
	sideMargin = 20
	lineHeight = 30
)

var (
	colorText    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	colorHeading = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorVenue   = color.RGBA{R: 0x34, G: 0x49, B: 0x5e, A: 0xff}
	colorCaption = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
)

type faceSet struct {
	title     font.Face // bold 32
	date      font.Face // regular 24
	venueHead font.Face // bold 26
	venue     font.Face // regular 22
	caption   font.Face // regular 18
}

var (
	facesOnce sync.Once
	faces     faceSet
	facesErr  error
)

func loadFaces() (faceSet, error) {
	facesOnce.Do(func() {
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		newFace := func(f *opentype.Font, size float64) (font.Face, error) {
			return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		}
		if faces.title, err = newFace(bold, 32); err == nil {
			if faces.venueHead, err = newFace(bold, 26); err == nil {
				if faces.date, err = newFace(regular, 24); err == nil {
					if faces.venue, err = newFace(regular, 22); err == nil {
						faces.caption, err = newFace(regular, 18)
					}
				}
			}
		}
		if err != nil {
			facesErr = fmt.Errorf("build font face: %w", err)
		}
	})
	return faces, facesErr
}

// RegistrationCode renders an event's registration URL as a scannable code
// image. Failures surface as ImageLoadError, the same class Compose uses.
func RegistrationCode(registrationURL string) (image.Image, error) {
	qr, err := qrcode.New(registrationURL, qrcode.Medium)
	if err != nil {
		return nil, &domain.ImageLoadError{Cause: err}
	}
	return qr.Image(codeSize), nil
}

// Compose draws the registration card onto the fixed 600x800 canvas: title
// centered top, date below it, the scannable code mid-canvas, the venue
// word-wrapped under the code, and the scan caption at the bottom. The
// result is a PNG blob. A nil code graphic is an ImageLoadError.
func Compose(event domain.Event, code image.Image) ([]byte, error) {
	if code == nil {
		return nil, &domain.ImageLoadError{}
	}
	fs, err := loadFaces()
	if err != nil {
		return nil, &domain.ImageLoadError{Cause: err}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	drawCentered(canvas, fs.title, colorText, event.Title, 60)
	drawCentered(canvas, fs.date, colorText, domain.FormatDateLong(event.Date), 100)

	codeRect := image.Rect((cardWidth-codeSize)/2, codeTop, (cardWidth+codeSize)/2, codeTop+codeSize)
	draw.ApproxBiLinear.Scale(canvas, codeRect, code, code.Bounds(), draw.Src, nil)

	drawCentered(canvas, fs.venueHead, colorHeading, "Venue:", codeTop+codeSize+60)

	y := codeTop + codeSize + 100
	for _, line := range wrapText(fs.venue, event.Venue, cardWidth-2*sideMargin) {
		drawCentered(canvas, fs.venue, colorVenue, line, y)
		y += lineHeight
	}
	// wrapText always emits at least one line, so y sits one leading past
	// the last venue line here.
	drawCentered(canvas, fs.caption, colorCaption, "Scan to Register", y-lineHeight+50)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, canvas); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered draws s horizontally centered with its baseline at y.
func drawCentered(dst *image.RGBA, face font.Face, c color.Color, s string, y int) {
	width := font.MeasureString(face, s)
	x := (fixed.I(cardWidth) - width) / 2
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// wrapText breaks s into lines whose rendered width stays within maxWidth,
// splitting on spaces. A single overlong word is kept on its own line.
func wrapText(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	limit := fixed.I(maxWidth)
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		test := line + " " + word
		if font.MeasureString(face, test) > limit {
			lines = append(lines, line)
			line = word
		} else {
			line = test
		}
	}
	return append(lines, line)
}
