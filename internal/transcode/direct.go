package transcode

import (
	"context"

	"github.com/bonsai/AirAp/internal/audio"
	"github.com/bonsai/AirAp/internal/config"
	apperrors "github.com/bonsai/AirAp/internal/errors"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/workspace"
)

// directBackend is the last resort: ffmpeg converting the score to
// the compressed artifact in one step, skipping the waveform stage.
// Only works with ffmpeg builds that can read the score format.
type directBackend struct {
	runner *exec.Runner
	cfg    *config.Config
}

func (b *directBackend) Name() string { return "ffmpeg-direct" }

func (b *directBackend) Direct() bool { return true }

func (b *directBackend) Available() bool { return true }

func (b *directBackend) Run(ctx context.Context, scorePath string, ws *workspace.Workspace) error {
	result, err := b.runner.Run(ctx, b.cfg.FallbackTimeout, b.cfg.FFmpegBin,
		"-i", scorePath, "-y", ws.StagingPath())
	if err != nil {
		return apperrors.NewProcessError("ffmpeg", "conversion", result.ExitCode, result.Stderr, err)
	}

	return audio.VerifyArtifact(ws.StagingPath(), audio.FormatMP3)
}
