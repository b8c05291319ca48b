package music

import "strings"

// Note is a single pitched event within a melody
type Note struct {
	Pitch    int     // MIDI note number, 0-127
	Start    float64 // seconds from the beginning of the piece
	Duration float64 // seconds, always > 0
}

// Melody is an ordered, monophonic note sequence. Insertion order is
// temporal order: starts never decrease and notes never overlap.
type Melody []Note

// End returns the time at which the last note stops sounding.
func (m Melody) End() float64 {
	if len(m) == 0 {
		return 0
	}
	last := m[len(m)-1]
	return last.Start + last.Duration
}

// MelodyFromLyrics derives a melody from lyric text. Each non-empty
// line becomes a phrase of max(4, word count) notes walking up the
// scale, with a long-short rhythm cycle and a half-beat rest between
// lines. The same input always produces the same melody.
func MelodyFromLyrics(lyrics string, bpm int, scale Scale) Melody {
	quarter := 60.0 / float64(bpm)

	var melody Melody
	cursor := 0.0

	for _, line := range strings.Split(lyrics, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		noteCount := len(strings.Fields(line))
		if noteCount < 4 {
			noteCount = 4
		}

		for i := 0; i < noteCount; i++ {
			var duration float64
			switch {
			case i%4 == 0:
				duration = quarter * 2 // half note
			case i%2 == 0:
				duration = quarter // quarter note
			default:
				duration = quarter * 0.5 // eighth note
			}

			melody = append(melody, Note{
				Pitch:    scale[i%7],
				Start:    cursor,
				Duration: duration,
			})
			cursor += duration
		}

		// rest between lines, not represented as a note
		cursor += quarter * 0.5
	}

	return melody
}
