package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.FluidsynthBin != "fluidsynth" || cfg.TimidityBin != "timidity" || cfg.FFmpegBin != "ffmpeg" {
		t.Errorf("unexpected tool defaults: %q %q %q",
			cfg.FluidsynthBin, cfg.TimidityBin, cfg.FFmpegBin)
	}
	if cfg.SynthTimeout != 120*time.Second {
		t.Errorf("SynthTimeout = %v, want 120s", cfg.SynthTimeout)
	}
	if cfg.FallbackTimeout != 60*time.Second || cfg.EncodeTimeout != 60*time.Second {
		t.Errorf("fallback/encode timeouts = %v/%v, want 60s each",
			cfg.FallbackTimeout, cfg.EncodeTimeout)
	}
	if cfg.DefaultBPM != 120 {
		t.Errorf("DefaultBPM = %d, want 120", cfg.DefaultBPM)
	}
	if cfg.DefaultKey != "C" {
		t.Errorf("DefaultKey = %q, want C", cfg.DefaultKey)
	}
	if len(cfg.SoundfontPaths) != 4 {
		t.Errorf("expected the four standard soundfont locations, got %v", cfg.SoundfontPaths)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AIRAP_FLUIDSYNTH", "/opt/fluidsynth/bin/fluidsynth")
	t.Setenv("AIRAP_SYNTH_TIMEOUT", "30s")
	t.Setenv("AIRAP_DEFAULT_BPM", "90")
	t.Setenv("AIRAP_DEFAULT_KEY", "Am")

	cfg := Load()

	if cfg.FluidsynthBin != "/opt/fluidsynth/bin/fluidsynth" {
		t.Errorf("FluidsynthBin = %q", cfg.FluidsynthBin)
	}
	if cfg.SynthTimeout != 30*time.Second {
		t.Errorf("SynthTimeout = %v, want 30s", cfg.SynthTimeout)
	}
	if cfg.DefaultBPM != 90 {
		t.Errorf("DefaultBPM = %d, want 90", cfg.DefaultBPM)
	}
	if cfg.DefaultKey != "Am" {
		t.Errorf("DefaultKey = %q, want Am", cfg.DefaultKey)
	}
}

func TestLoadIgnoresInvalidOverrides(t *testing.T) {
	t.Setenv("AIRAP_DEFAULT_BPM", "not-a-number")
	t.Setenv("AIRAP_SYNTH_TIMEOUT", "-5s")

	cfg := Load()
	if cfg.DefaultBPM != 120 {
		t.Errorf("invalid bpm override not ignored: %d", cfg.DefaultBPM)
	}
	if cfg.SynthTimeout != 120*time.Second {
		t.Errorf("negative timeout override not ignored: %v", cfg.SynthTimeout)
	}
}

func TestSoundfontOverridePrepended(t *testing.T) {
	t.Setenv("AIRAP_SOUNDFONT", "/home/me/custom.sf2")

	cfg := Load()
	if cfg.SoundfontPaths[0] != "/home/me/custom.sf2" {
		t.Errorf("custom soundfont not probed first: %v", cfg.SoundfontPaths)
	}
	if len(cfg.SoundfontPaths) != 5 {
		t.Errorf("standard locations lost: %v", cfg.SoundfontPaths)
	}
}
