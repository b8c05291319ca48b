package score

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/bonsai/AirAp/internal/music"
)

// notationWriter lays the melody out the way a notation program
// would: tempo, key signature and 4/4 meter up front, then one event
// per note with offsets expressed in quarter-length units.
type notationWriter struct{}

func (nw *notationWriter) Name() string { return "notation" }

func (nw *notationWriter) Available() bool { return true }

func (nw *notationWriter) Write(melody music.Melody, bpm int, key string, path string) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(float64(bpm)))
	sig := keySignature(key)
	tr.Add(0, smf.MetaKey(sig.note, sig.major, sig.num, sig.flat))
	tr.Add(0, smf.MetaMeter(4, 4))

	// quarter-length unit in seconds at this tempo
	unit := 60.0 / float64(bpm) / 4.0

	var current uint32
	for _, n := range melody {
		on := uint32(math.Round(n.Start / unit * ticksPerQuarter))
		off := uint32(math.Round((n.Start + n.Duration) / unit * ticksPerQuarter))
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
