package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bonsai/AirAp/internal/config"
	"github.com/bonsai/AirAp/internal/music"
	"github.com/bonsai/AirAp/internal/progress"
	"github.com/bonsai/AirAp/internal/score"
	"github.com/bonsai/AirAp/internal/workspace"
)

type stubRenderer struct {
	lastBPM int
	lastKey string
	err     error
}

func (s *stubRenderer) Render(melody music.Melody, bpm int, key string, path string) (string, error) {
	s.lastBPM = bpm
	s.lastKey = key
	if s.err != nil {
		return "", s.err
	}
	return "stub", os.WriteFile(path, []byte("MThd stub score"), 0644)
}

type stubTranscoder struct {
	err        error
	scoreBytes []byte // captured from the score path when invoked
}

func (s *stubTranscoder) Transcode(ctx context.Context, scorePath string, ws *workspace.Workspace) (string, error) {
	s.scoreBytes, _ = os.ReadFile(scorePath)
	if s.err != nil {
		return "", s.err
	}
	return "stub", os.WriteFile(ws.Destination, []byte("mp3 bytes"), 0644)
}

func testConfig() *config.Config {
	return &config.Config{DefaultBPM: 120, DefaultKey: "C"}
}

func newTestOrchestrator(r scoreRenderer, t audioTranscoder) *Orchestrator {
	return &Orchestrator{
		cfg:        testConfig(),
		renderer:   r,
		transcoder: t,
		progress:   progress.NewReporter(io.Discard, false),
	}
}

func TestCompose(t *testing.T) {
	ctx := context.Background()
	req := Request{Lyrics: "Yo yo yo\nListen up now", BPM: 120, Key: "C"}

	t.Run("Success", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "track.mp3")
		o := newTestOrchestrator(&stubRenderer{}, &stubTranscoder{})

		result, err := o.Compose(ctx, req, dest)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if result.ArtifactPath != dest {
			t.Errorf("artifact at %q, want %q", result.ArtifactPath, dest)
		}
		if result.Notes != 8 {
			t.Errorf("result notes = %d, want 8", result.Notes)
		}
		if _, err := os.Stat(dest); err != nil {
			t.Error("destination missing after success")
		}

		// transient score must be gone
		ws := workspace.ForDestination(dest)
		if _, err := os.Stat(ws.ScorePath()); !os.IsNotExist(err) {
			t.Error("transient score survived a successful run")
		}
	})

	t.Run("TranscodeFailureCleansScore", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "track.mp3")
		o := newTestOrchestrator(&stubRenderer{}, &stubTranscoder{err: errors.New("no tools")})

		_, err := o.Compose(ctx, req, dest)
		if err == nil {
			t.Fatal("expected failure")
		}

		ws := workspace.ForDestination(dest)
		if _, statErr := os.Stat(ws.ScorePath()); !os.IsNotExist(statErr) {
			t.Error("transient score survived a failed run")
		}
		if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
			t.Error("destination exists after failure")
		}
	})

	t.Run("RenderFailurePropagates", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "track.mp3")
		tc := &stubTranscoder{}
		o := newTestOrchestrator(&stubRenderer{err: errors.New("disk full")}, tc)

		if _, err := o.Compose(ctx, req, dest); err == nil {
			t.Fatal("expected failure")
		}
		if tc.scoreBytes != nil {
			t.Error("transcoder ran despite render failure")
		}
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "track.mp3")
		r := &stubRenderer{}
		o := newTestOrchestrator(r, &stubTranscoder{})

		result, err := o.Compose(ctx, Request{Lyrics: "hello world"}, dest)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if r.lastBPM != 120 || result.BPM != 120 {
			t.Errorf("bpm = %d/%d, want default 120", r.lastBPM, result.BPM)
		}
		if r.lastKey != "C" || result.Key != "C" {
			t.Errorf("key = %q/%q, want default C", r.lastKey, result.Key)
		}
	})

	t.Run("NegativeBPMReplaced", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "track.mp3")
		r := &stubRenderer{}
		o := newTestOrchestrator(r, &stubTranscoder{})

		if _, err := o.Compose(ctx, Request{Lyrics: "hello world", BPM: -3}, dest); err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if r.lastBPM != 120 {
			t.Errorf("bpm = %d, want default 120", r.lastBPM)
		}
	})
}

// Identical requests must serialize to identical score bytes even
// though the final audio may differ between external tool runs.
func TestComposeScoreDeterminism(t *testing.T) {
	ctx := context.Background()
	req := Request{Lyrics: "same lyrics both times\nsecond line here", BPM: 96, Key: "Am"}

	capture := func(dest string) []byte {
		tc := &stubTranscoder{}
		o := &Orchestrator{
			cfg:        testConfig(),
			renderer:   score.NewRenderer(progress.NewReporter(io.Discard, false)),
			transcoder: tc,
			progress:   progress.NewReporter(io.Discard, false),
		}
		if _, err := o.Compose(ctx, req, dest); err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		return tc.scoreBytes
	}

	dir := t.TempDir()
	a := capture(filepath.Join(dir, "a.mp3"))
	b := capture(filepath.Join(dir, "b.mp3"))

	if len(a) == 0 {
		t.Fatal("no score bytes captured")
	}
	if !bytes.Equal(a, b) {
		t.Error("identical requests produced different score bytes")
	}
}
