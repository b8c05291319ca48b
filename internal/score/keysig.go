package score

import "github.com/bonsai/AirAp/internal/music"

// signature describes a key signature for score metadata
type signature struct {
	note  uint8 // root as a note class, 0 = C
	major bool
	num   uint8 // number of accidentals
	flat  bool
}

// Accidental counts by root note class, picking the enharmonic
// spelling with the fewer accidentals (Db over C#, but F# over Gb by
// convention).
var majorSignatures = [12]struct {
	num  uint8
	flat bool
}{
	{0, false}, // C
	{5, true},  // Db
	{2, false}, // D
	{3, true},  // Eb
	{4, false}, // E
	{1, true},  // F
	{6, false}, // F#
	{1, false}, // G
	{4, true},  // Ab
	{3, false}, // A
	{2, true},  // Bb
	{5, false}, // B
}

var minorSignatures = [12]struct {
	num  uint8
	flat bool
}{
	{3, true},  // Cm
	{4, false}, // C#m
	{1, true},  // Dm
	{6, true},  // Ebm
	{1, false}, // Em
	{4, true},  // Fm
	{3, false}, // F#m
	{2, true},  // Gm
	{5, false}, // G#m
	{0, false}, // Am
	{5, true},  // Bbm
	{2, false}, // Bm
}

// keySignature resolves a key name into score metadata. Unrecognized
// names land on C major, mirroring the scale resolution fallback.
func keySignature(key string) signature {
	root, minor := music.ParseKey(key)
	class := uint8(root % 12)

	if minor {
		sig := minorSignatures[class]
		return signature{note: class, major: false, num: sig.num, flat: sig.flat}
	}
	sig := majorSignatures[class]
	return signature{note: class, major: true, num: sig.num, flat: sig.flat}
}
