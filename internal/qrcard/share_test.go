package qrcard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	canShare bool
	err      error
	calls    int
}

func (f *fakeSurface) CanShare() bool { return f.canShare }

func (f *fakeSurface) Share(ctx context.Context, title, text, imagePath string) error {
	f.calls++
	return f.err
}

func TestSharer_Download(t *testing.T) {
	dir := t.TempDir()
	s := NewSharer(nil, dir, zerolog.Nop())

	path, err := s.Download(sampleEvent(), []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Tech_Summit_2025-Registration-QR.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSharer_NativeShare(t *testing.T) {
	surface := &fakeSurface{canShare: true}
	s := NewSharer(surface, t.TempDir(), zerolog.Nop())
	s.copyText = func(string) error { t.Fatal("clipboard must not be touched on a completed share"); return nil }

	out, err := s.Share(context.Background(), sampleEvent(), []byte("png"))
	require.NoError(t, err)
	assert.True(t, out.Shared)
	assert.Equal(t, 1, surface.calls)
}

func TestSharer_RejectedShareFallsBack(t *testing.T) {
	dir := t.TempDir()
	surface := &fakeSurface{canShare: true, err: ErrShareRejected}
	s := NewSharer(surface, dir, zerolog.Nop())

	var copied string
	s.copyText = func(text string) error { copied = text; return nil }

	out, err := s.Share(context.Background(), sampleEvent(), []byte("png"))
	require.NoError(t, err)

	// The fallback never silently no-ops: the user ends up with a
	// downloaded card and the registration URL on the clipboard.
	assert.False(t, out.Shared)
	assert.True(t, out.URLCopied)
	assert.FileExists(t, out.DownloadPath)
	assert.Equal(t, sampleEvent().RegistrationURL, copied)
}

func TestSharer_NoSurfaceFallsBack(t *testing.T) {
	s := NewSharer(nil, t.TempDir(), zerolog.Nop())
	s.copyText = func(string) error { return nil }

	out, err := s.Share(context.Background(), sampleEvent(), []byte("png"))
	require.NoError(t, err)
	assert.False(t, out.Shared)
	assert.True(t, out.URLCopied)
	assert.NotEmpty(t, out.DownloadPath)
}

func TestSharer_FallbackWithoutClipboardStillDownloads(t *testing.T) {
	s := NewSharer(nil, t.TempDir(), zerolog.Nop())
	s.copyText = func(string) error { return errors.New("no display") }

	out, err := s.Share(context.Background(), sampleEvent(), []byte("png"))
	require.NoError(t, err)
	assert.False(t, out.URLCopied)
	assert.FileExists(t, out.DownloadPath)
}

func TestSharer_FallbackFailsOnlyWhenNothingWorked(t *testing.T) {
	// An unwritable download dir plus a dead clipboard leaves the user
	// with nothing, which must surface as an error.
	s := NewSharer(nil, filepath.Join(string(os.PathSeparator), "proc", "no-such-dir"), zerolog.Nop())
	s.copyText = func(string) error { return errors.New("no display") }

	_, err := s.Share(context.Background(), sampleEvent(), []byte("png"))
	assert.Error(t, err)
}
