package score

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	"github.com/bonsai/AirAp/internal/music"
)

// rawWriter emits the SMF byte format by hand: format 0, one track,
// a tempo event, then note-on/note-off pairs with tick deltas. It has
// no dependencies and anchors the fallback chain.
type rawWriter struct{}

func (rw *rawWriter) Name() string { return "raw" }

func (rw *rawWriter) Available() bool { return true }

func (rw *rawWriter) Write(melody music.Melody, bpm int, key string, path string) error {
	var events bytes.Buffer

	// set_tempo meta event, microseconds per quarter note
	usPerQuarter := 60000000 / bpm
	writeVarLen(&events, 0)
	events.Write([]byte{
		0xFF, 0x51, 0x03,
		byte(usPerQuarter >> 16), byte(usPerQuarter >> 8), byte(usPerQuarter),
	})

	beatsPerSecond := float64(bpm) / 60.0
	currentTick := 0

	for _, n := range melody {
		startTick := int(math.Round(n.Start * beatsPerSecond * ticksPerQuarter))
		durationTicks := int(math.Round(n.Duration * beatsPerSecond * ticksPerQuarter))

		wait := startTick - currentTick
		if wait < 0 {
			wait = 0
		}

		writeVarLen(&events, uint32(wait))
		events.Write([]byte{0x90, byte(n.Pitch), 64}) // note on
		writeVarLen(&events, uint32(durationTicks))
		events.Write([]byte{0x80, byte(n.Pitch), 64}) // note off

		currentTick = startTick + durationTicks
	}

	// end of track
	writeVarLen(&events, 0)
	events.Write([]byte{0xFF, 0x2F, 0x00})

	var file bytes.Buffer
	file.WriteString("MThd")
	binary.Write(&file, binary.BigEndian, uint32(6))
	binary.Write(&file, binary.BigEndian, uint16(0)) // format 0
	binary.Write(&file, binary.BigEndian, uint16(1)) // one track
	binary.Write(&file, binary.BigEndian, uint16(ticksPerQuarter))
	file.WriteString("MTrk")
	binary.Write(&file, binary.BigEndian, uint32(events.Len()))
	file.Write(events.Bytes())

	return os.WriteFile(path, file.Bytes(), 0644)
}

// writeVarLen encodes a MIDI variable-length quantity: big-endian
// seven-bit groups with the continuation bit set on all but the last.
func writeVarLen(buf *bytes.Buffer, v uint32) {
	encoded := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		encoded = append([]byte{byte(v&0x7F) | 0x80}, encoded...)
	}
	buf.Write(encoded)
}
