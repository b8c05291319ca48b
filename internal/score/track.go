package score

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/bonsai/AirAp/internal/music"
)

// trackWriter writes a single named track with a tempo event and one
// note event per melody note, converting seconds to beats.
type trackWriter struct{}

func (tw *trackWriter) Name() string { return "track" }

func (tw *trackWriter) Available() bool { return true }

func (tw *trackWriter) Write(melody music.Melody, bpm int, key string, path string) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("AirAp"))
	tr.Add(0, smf.MetaTempo(float64(bpm)))

	beatsPerSecond := float64(bpm) / 60.0

	var current uint32
	for _, n := range melody {
		on := uint32(math.Round(n.Start * beatsPerSecond * ticksPerQuarter))
		off := uint32(math.Round((n.Start + n.Duration) * beatsPerSecond * ticksPerQuarter))
		if on < current {
			on = current
		}
		if off < on {
			off = on
		}

		tr.Add(on-current, midi.NoteOn(0, uint8(n.Pitch), 100))
		tr.Add(off-on, midi.NoteOff(0, uint8(n.Pitch)))
		current = off
	}

	tr.Close(0)
	s.Add(tr)
	return s.WriteFile(path)
}
