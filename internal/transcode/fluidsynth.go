package transcode

import (
	"context"
	"os"

	"github.com/bonsai/AirAp/internal/audio"
	"github.com/bonsai/AirAp/internal/config"
	apperrors "github.com/bonsai/AirAp/internal/errors"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/workspace"
)

// fluidsynthBackend renders through fluidsynth in non-interactive
// file-output mode against a located General MIDI soundfont. Without
// a soundfont the backend is unavailable and no process is started.
type fluidsynthBackend struct {
	runner *exec.Runner
	cfg    *config.Config
}

func (b *fluidsynthBackend) Name() string { return "fluidsynth" }

func (b *fluidsynthBackend) Direct() bool { return false }

func (b *fluidsynthBackend) Available() bool {
	return LocateSoundfont(b.cfg) != ""
}

func (b *fluidsynthBackend) Run(ctx context.Context, scorePath string, ws *workspace.Workspace) error {
	soundfont := LocateSoundfont(b.cfg)
	if soundfont == "" {
		return apperrors.ErrNoSoundfont
	}

	result, err := b.runner.Run(ctx, b.cfg.SynthTimeout, b.cfg.FluidsynthBin,
		"-ni", "-F", ws.WaveformPath(), soundfont, scorePath)
	if err != nil {
		return apperrors.NewProcessError("fluidsynth", "synthesis", result.ExitCode, result.Stderr, err)
	}

	return audio.VerifyArtifact(ws.WaveformPath(), audio.FormatWAV)
}

// LocateSoundfont returns the first configured soundfont path that
// exists, or "" when none do.
func LocateSoundfont(cfg *config.Config) string {
	for _, path := range cfg.SoundfontPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
