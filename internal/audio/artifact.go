package audio

import (
	"fmt"
	"os"

	apperrors "github.com/bonsai/AirAp/internal/errors"
)

// Format represents an audio file format
type Format string

const (
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	FormatUnknown Format = "unknown"
)

// VerifyArtifact checks that a backend actually produced the file it
// claims to have written: it must exist, be non-empty, and carry the
// expected format's magic bytes.
func VerifyArtifact(path string, want Format) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrEmptyOutput, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is zero bytes", apperrors.ErrEmptyOutput, path)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if format != want {
		return fmt.Errorf("%s: expected %s output, got %s", path, want, format)
	}
	return nil
}

// DetectFormat checks file magic bytes to determine audio format
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := f.Read(header)
	if err != nil || n < 4 {
		return FormatUnknown, fmt.Errorf("%w: could not read header of %s", apperrors.ErrEmptyOutput, path)
	}

	// WAV: RIFF....WAVE
	if string(header[:4]) == "RIFF" && n >= 12 && string(header[8:12]) == "WAVE" {
		return FormatWAV, nil
	}

	// MP3 with ID3 tag
	if string(header[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// MP3 frame sync
	if header[0] == 0xFF && (header[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	return FormatUnknown, nil
}
