// Package score serializes melodies into symbolic score files.
//
// Writing goes through an ordered chain of writers: a notation-style
// writer that lays out tempo, key and meter metadata, a plain
// single-track writer, and a raw writer that emits the file format by
// hand. Earlier writers may be skipped or fail; the raw writer has no
// dependencies and serves as the guaranteed fallback.
package score

import (
	"os"

	apperrors "github.com/bonsai/AirAp/internal/errors"
	"github.com/bonsai/AirAp/internal/music"
	"github.com/bonsai/AirAp/internal/progress"
)

// Resolution of the written scores, in ticks per quarter note
const ticksPerQuarter = 480

// Writer is one strategy for putting a melody on disk as a score file
type Writer interface {
	Name() string
	Available() bool
	Write(melody music.Melody, bpm int, key string, path string) error
}

// Renderer tries each writer in order until one succeeds
type Renderer struct {
	writers  []Writer
	progress *progress.Reporter
}

// NewRenderer creates a renderer with the default writer chain
func NewRenderer(reporter *progress.Reporter) *Renderer {
	return &Renderer{
		writers:  []Writer{&notationWriter{}, &trackWriter{}, &rawWriter{}},
		progress: reporter,
	}
}

// NewRendererWithWriters creates a renderer with a custom chain
func NewRendererWithWriters(reporter *progress.Reporter, writers ...Writer) *Renderer {
	return &Renderer{writers: writers, progress: reporter}
}

// Render writes the melody to path, returning the name of the writer
// that succeeded. An empty melody still produces a valid, note-free
// score. Only exhaustion of the whole chain is an error.
func (r *Renderer) Render(melody music.Melody, bpm int, key string, path string) (string, error) {
	var attempted []string
	var lastErr error

	for _, w := range r.writers {
		attempted = append(attempted, w.Name())

		if !w.Available() {
			r.progress.Warning("%s writer unavailable, trying next", w.Name())
			continue
		}

		if err := w.Write(melody, bpm, key, path); err != nil {
			r.progress.Warning("%s writer failed: %v", w.Name(), err)
			lastErr = err
			// discard whatever the failed writer left behind
			os.Remove(path)
			continue
		}

		return w.Name(), nil
	}

	return "", &apperrors.RenderError{Attempted: attempted, Cause: lastErr}
}
