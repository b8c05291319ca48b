package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Well-known General MIDI soundfont locations, probed in order.
var defaultSoundfontPaths = []string{
	"/usr/share/sounds/sf2/FluidR3_GM.sf2",
	"/usr/share/soundfonts/FluidR3_GM.sf2",
	"/usr/local/share/soundfonts/FluidR3_GM.sf2",
	"/usr/share/fluidsynth/default.sf2",
}

// Config holds the composition pipeline configuration.
// All fields have working defaults; environment variables (optionally
// from a .env file) override them.
type Config struct {
	// External tool binaries
	FluidsynthBin string
	TimidityBin   string
	FFmpegBin     string

	// Soundfont probe locations, first match wins
	SoundfontPaths []string

	// Per-backend timeouts
	SynthTimeout    time.Duration // fluidsynth
	FallbackTimeout time.Duration // timidity and direct conversion
	EncodeTimeout   time.Duration // waveform to MP3 encoding

	// Applied when a request carries no usable value
	DefaultBPM int
	DefaultKey string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		FluidsynthBin:   getEnv("AIRAP_FLUIDSYNTH", "fluidsynth"),
		TimidityBin:     getEnv("AIRAP_TIMIDITY", "timidity"),
		FFmpegBin:       getEnv("AIRAP_FFMPEG", "ffmpeg"),
		SoundfontPaths:  defaultSoundfontPaths,
		SynthTimeout:    getDuration("AIRAP_SYNTH_TIMEOUT", 120*time.Second),
		FallbackTimeout: getDuration("AIRAP_FALLBACK_TIMEOUT", 60*time.Second),
		EncodeTimeout:   getDuration("AIRAP_ENCODE_TIMEOUT", 60*time.Second),
		DefaultBPM:      getInt("AIRAP_DEFAULT_BPM", 120),
		DefaultKey:      getEnv("AIRAP_DEFAULT_KEY", "C"),
	}

	// A user-supplied soundfont takes priority over the system ones
	if sf := os.Getenv("AIRAP_SOUNDFONT"); sf != "" {
		cfg.SoundfontPaths = append([]string{sf}, cfg.SoundfontPaths...)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
