package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bonsai/AirAp/internal/config"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/music"
	"github.com/bonsai/AirAp/internal/progress"
	"github.com/bonsai/AirAp/internal/score"
	"github.com/bonsai/AirAp/internal/transcode"
	"github.com/bonsai/AirAp/internal/workspace"
)

// Request is the immutable input of one composition run
type Request struct {
	Lyrics string
	BPM    int
	Key    string
}

// Result describes the finished composition
type Result struct {
	ArtifactPath string
	BPM          int
	Key          string
	Notes        int
	Seconds      float64 // melody length
	ScoreWriter  string  // score writer that succeeded
	AudioBackend string  // audio backend that succeeded
}

type scoreRenderer interface {
	Render(melody music.Melody, bpm int, key string, path string) (string, error)
}

type audioTranscoder interface {
	Transcode(ctx context.Context, scorePath string, ws *workspace.Workspace) (string, error)
}

// Orchestrator coordinates the full composition pipeline
type Orchestrator struct {
	cfg        *config.Config
	renderer   scoreRenderer
	transcoder audioTranscoder
	progress   *progress.Reporter
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(cfg *config.Config, out io.Writer, verbose bool) *Orchestrator {
	reporter := progress.NewReporter(out, verbose)
	runner := exec.NewRunner()
	return &Orchestrator{
		cfg:        cfg,
		renderer:   score.NewRenderer(reporter),
		transcoder: transcode.NewTranscoder(runner, cfg, reporter),
		progress:   reporter,
	}
}

// Compose runs lyrics through melody generation, score rendering and
// audio transcoding, leaving the compressed artifact at destination.
// The transient score file is removed on every exit path. Invalid bpm
// or key values are silently replaced by the configured defaults.
func (o *Orchestrator) Compose(ctx context.Context, req Request, destination string) (*Result, error) {
	bpm := req.BPM
	if bpm <= 0 {
		bpm = o.cfg.DefaultBPM
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		key = o.cfg.DefaultKey
	}

	ws := workspace.ForDestination(destination)
	defer ws.Cleanup()

	// Stage 1: melody
	o.progress.StartStage(progress.StageCompose)
	scale := music.ResolveScale(key)
	melody := music.MelodyFromLyrics(req.Lyrics, bpm, scale)
	o.progress.StageComplete("Generated %d notes (%.1fs at %d BPM, key %s)",
		len(melody), melody.End(), bpm, key)

	// Stage 2: symbolic score
	o.progress.StartStage(progress.StageScore)
	writer, err := o.renderer.Render(melody, bpm, key, ws.ScorePath())
	if err != nil {
		return nil, fmt.Errorf("score rendering: %w", err)
	}
	o.progress.StageComplete("Score written with %s writer", writer)

	// Stage 3: audio
	o.progress.StartStage(progress.StageAudio)
	backend, err := o.transcoder.Transcode(ctx, ws.ScorePath(), ws)
	if err != nil {
		return nil, fmt.Errorf("audio transcoding: %w", err)
	}
	o.progress.StageComplete("Rendered with %s", backend)
	o.progress.Done(filepath.Clean(destination))

	return &Result{
		ArtifactPath: destination,
		BPM:          bpm,
		Key:          key,
		Notes:        len(melody),
		Seconds:      melody.End(),
		ScoreWriter:  writer,
		AudioBackend: backend,
	}, nil
}
