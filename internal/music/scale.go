package music

import "strings"

// Scale is an ordered set of seven ascending MIDI pitches built from a
// root and a diatonic offset pattern.
type Scale [7]int

// Diatonic semitone offsets from the root
var (
	majorPattern = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorPattern = [7]int{0, 2, 3, 5, 7, 8, 10} // natural minor
)

// Root pitches for one octave around middle C. Sharp and flat aliases
// map to the same semitone.
var rootPitches = map[string]int{
	"C": 60, "C#": 61, "Db": 61,
	"D": 62, "D#": 63, "Eb": 63,
	"E": 64,
	"F": 65, "F#": 66, "Gb": 66,
	"G": 67, "G#": 68, "Ab": 68,
	"A": 69, "A#": 70, "Bb": 70,
	"B": 71,
}

// ParseKey splits a key name like "C", "F#" or "Bbm" into its root
// pitch and mode. A single trailing "m" selects natural minor. Any
// name whose root is not recognized falls back to C major.
func ParseKey(key string) (root int, minor bool) {
	name := strings.TrimSpace(key)

	base := name
	if strings.HasSuffix(name, "m") {
		base = strings.TrimSuffix(name, "m")
		minor = true
	}
	if pitch, ok := rootPitches[base]; ok {
		return pitch, minor
	}
	return rootPitches["C"], false
}

// ResolveScale maps a key name to its seven-note scale.
func ResolveScale(key string) Scale {
	root, minor := ParseKey(key)

	pattern := majorPattern
	if minor {
		pattern = minorPattern
	}

	var s Scale
	for i, offset := range pattern {
		s[i] = root + offset
	}
	return s
}
