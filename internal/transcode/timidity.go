package transcode

import (
	"context"

	"github.com/bonsai/AirAp/internal/audio"
	"github.com/bonsai/AirAp/internal/config"
	apperrors "github.com/bonsai/AirAp/internal/errors"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/workspace"
)

// timidityBackend renders through timidity, which carries its own
// instrument patches and needs no soundfont probing.
type timidityBackend struct {
	runner *exec.Runner
	cfg    *config.Config
}

func (b *timidityBackend) Name() string { return "timidity" }

func (b *timidityBackend) Direct() bool { return false }

func (b *timidityBackend) Available() bool { return true }

func (b *timidityBackend) Run(ctx context.Context, scorePath string, ws *workspace.Workspace) error {
	result, err := b.runner.Run(ctx, b.cfg.FallbackTimeout, b.cfg.TimidityBin,
		scorePath, "-Ow", "-o", ws.WaveformPath())
	if err != nil {
		return apperrors.NewProcessError("timidity", "synthesis", result.ExitCode, result.Stderr, err)
	}

	return audio.VerifyArtifact(ws.WaveformPath(), audio.FormatWAV)
}
