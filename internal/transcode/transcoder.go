// Package transcode turns a symbolic score file into a compressed
// audio file by trying a chain of external synthesizer backends.
//
// The first two backends render an intermediate waveform which a
// shared encoder step compresses; the last converts in a single step.
// Process failure, timeout and missing output are all treated the
// same way: log and move to the next backend. Only exhausting the
// chain is fatal.
package transcode

import (
	"context"
	"fmt"
	"os"

	"github.com/bonsai/AirAp/internal/audio"
	"github.com/bonsai/AirAp/internal/config"
	apperrors "github.com/bonsai/AirAp/internal/errors"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/progress"
	"github.com/bonsai/AirAp/internal/workspace"
)

// Backend is one strategy for rendering a score file to audio.
// Waveform backends leave their output at ws.WaveformPath(); direct
// backends write the compressed artifact to ws.StagingPath().
type Backend interface {
	Name() string
	Available() bool
	Direct() bool
	Run(ctx context.Context, scorePath string, ws *workspace.Workspace) error
}

// Transcoder tries each backend in order until one produces audio
type Transcoder struct {
	runner   *exec.Runner
	cfg      *config.Config
	progress *progress.Reporter
	backends []Backend
}

// NewTranscoder creates a transcoder with the default backend chain
func NewTranscoder(runner *exec.Runner, cfg *config.Config, reporter *progress.Reporter) *Transcoder {
	t := &Transcoder{runner: runner, cfg: cfg, progress: reporter}
	t.backends = []Backend{
		&fluidsynthBackend{runner: runner, cfg: cfg},
		&timidityBackend{runner: runner, cfg: cfg},
		&directBackend{runner: runner, cfg: cfg},
	}
	return t
}

// Transcode renders the score into the workspace's destination,
// returning the name of the backend that produced it. The compressed
// file reaches the destination only through a rename on full success;
// failures leave nothing behind there.
func (t *Transcoder) Transcode(ctx context.Context, scorePath string, ws *workspace.Workspace) (string, error) {
	var attempted []string

	for _, b := range t.backends {
		attempted = append(attempted, b.Name())

		if !b.Available() {
			t.progress.Warning("%s unavailable, trying next backend", b.Name())
			continue
		}

		t.progress.Update("rendering with %s", b.Name())
		if err := b.Run(ctx, scorePath, ws); err != nil {
			t.progress.Warning("%s failed: %v", b.Name(), err)
			t.discardIntermediates(ws)
			continue
		}

		if !b.Direct() {
			if err := t.encode(ctx, ws); err != nil {
				t.progress.Warning("encoding %s output failed: %v", b.Name(), err)
				t.discardIntermediates(ws)
				continue
			}
		}

		if err := os.Rename(ws.StagingPath(), ws.Destination); err != nil {
			return "", fmt.Errorf("finalize artifact: %w", err)
		}
		return b.Name(), nil
	}

	return "", &apperrors.TranscodeError{Attempted: attempted}
}

// encode compresses the intermediate waveform into the staging file
// at a fixed quality, then deletes the waveform.
func (t *Transcoder) encode(ctx context.Context, ws *workspace.Workspace) error {
	result, err := t.runner.Run(ctx, t.cfg.EncodeTimeout, t.cfg.FFmpegBin,
		"-i", ws.WaveformPath(),
		"-codec:a", "libmp3lame", "-qscale:a", "2",
		"-y", ws.StagingPath())
	if err != nil {
		return apperrors.NewProcessError("ffmpeg", "encoding", result.ExitCode, result.Stderr, err)
	}

	if err := audio.VerifyArtifact(ws.StagingPath(), audio.FormatMP3); err != nil {
		return err
	}

	return os.Remove(ws.WaveformPath())
}

func (t *Transcoder) discardIntermediates(ws *workspace.Workspace) {
	os.Remove(ws.WaveformPath())
	os.Remove(ws.StagingPath())
}
