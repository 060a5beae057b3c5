package qrcard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/hohoindia/event-client/internal/core/domain"
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName derives the card's artifact name from the event title, with
// everything outside [a-zA-Z0-9] collapsed to underscores.
func FileName(title string) string {
	return filenameSanitizer.ReplaceAllString(title, "_") + "-Registration-QR.png"
}

// ErrShareRejected is returned by a ShareSurface when the user dismissed
// the native share dialog; the sharer falls back instead of failing.
var ErrShareRejected = errors.New("share rejected")

// ShareSurface is a native share integration (OS share sheet, messaging
// hook). The client ships without one by default; nil means always fall
// back.
type ShareSurface interface {
	CanShare() bool
	Share(ctx context.Context, title, text, imagePath string) error
}

// ShareOutcome records what the user actually ended up with. The fallback
// never silently no-ops: when Shared is false, DownloadPath is a concrete
// written file and URLCopied says whether the registration link reached the
// clipboard.
type ShareOutcome struct {
	Shared       bool
	DownloadPath string
	URLCopied    bool
}

// Sharer owns the two consumers of a composed card: direct download and
// share-with-fallback.
type Sharer struct {
	surface     ShareSurface
	downloadDir string
	copyText    func(string) error
	log         zerolog.Logger
}

// NewSharer builds a Sharer writing downloads under downloadDir. surface
// may be nil.
func NewSharer(surface ShareSurface, downloadDir string, log zerolog.Logger) *Sharer {
	return &Sharer{
		surface:     surface,
		downloadDir: downloadDir,
		copyText:    clipboard.WriteAll,
		log:         log,
	}
}

// Download writes the composed card to disk and returns the path.
func (s *Sharer) Download(event domain.Event, card []byte) (string, error) {
	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("download card: create dir: %w", err)
	}
	path := filepath.Join(s.downloadDir, FileName(event.Title))
	if err := os.WriteFile(path, card, 0o644); err != nil {
		return "", fmt.Errorf("download card: %w", err)
	}
	return path, nil
}

// Share attempts the native share surface with the card attached. When no
// surface is available, or the user rejects it, the fallback copies the
// registration URL to the clipboard and downloads the card, so the user is
// always left with either a completed share or a concrete artifact.
func (s *Sharer) Share(ctx context.Context, event domain.Event, card []byte) (ShareOutcome, error) {
	if s.surface != nil && s.surface.CanShare() {
		path, err := s.Download(event, card)
		if err != nil {
			return ShareOutcome{}, err
		}
		text := fmt.Sprintf("Register for %s at %s", event.Title, event.Venue)
		err = s.surface.Share(ctx, event.Title+" - Registration", text, path)
		if err == nil {
			return ShareOutcome{Shared: true, DownloadPath: path}, nil
		}
		if !errors.Is(err, ErrShareRejected) {
			s.log.Warn().Err(err).Msg("native share failed, falling back")
		}
	}
	return s.fallback(event, card)
}

// fallback is the no-native-surface path. It fails only when neither the
// download nor the clipboard write produced anything for the user.
func (s *Sharer) fallback(event domain.Event, card []byte) (ShareOutcome, error) {
	out := ShareOutcome{}

	path, downloadErr := s.Download(event, card)
	if downloadErr == nil {
		out.DownloadPath = path
	}

	if err := s.copyText(event.RegistrationURL); err != nil {
		s.log.Debug().Err(err).Msg("clipboard unavailable")
	} else {
		out.URLCopied = true
	}

	if downloadErr != nil && !out.URLCopied {
		return ShareOutcome{}, fmt.Errorf("share fallback: %w", downloadErr)
	}
	return out, nil
}
