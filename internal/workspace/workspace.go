package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Workspace tracks the intermediate files of a single composition,
// all derived from the caller's destination path so concurrent
// requests with distinct destinations never collide.
type Workspace struct {
	Destination string
	CreatedAt   time.Time

	stem string
}

// ForDestination derives a workspace from the final artifact path.
func ForDestination(dest string) *Workspace {
	stem := strings.TrimSuffix(dest, filepath.Ext(dest))
	return &Workspace{
		Destination: dest,
		CreatedAt:   time.Now(),
		stem:        stem,
	}
}

// ScorePath is the transient symbolic score, removed before the
// pipeline returns regardless of outcome.
func (w *Workspace) ScorePath() string { return w.stem + ".mid" }

// WaveformPath is the intermediate uncompressed render produced by
// the synthesizer backends.
func (w *Workspace) WaveformPath() string { return w.stem + ".wav" }

// StagingPath is where the compressed artifact is written before the
// final rename into Destination. The .mp3 suffix stays last so the
// encoder can infer the container from it.
func (w *Workspace) StagingPath() string { return w.stem + ".part.mp3" }

// Cleanup removes every transient file. The destination itself is
// never touched: it only comes into existence via the rename from the
// staging path on full success.
func (w *Workspace) Cleanup() error {
	var firstErr error
	for _, path := range []string{w.ScorePath(), w.WaveformPath(), w.StagingPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
