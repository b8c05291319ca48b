package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bonsai/AirAp/internal/config"
	"github.com/bonsai/AirAp/internal/exec"
	"github.com/bonsai/AirAp/internal/pipeline"
	"github.com/bonsai/AirAp/internal/transcode"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "airap",
	Short: "Turn lyrics into a rendered audio track",
	Long: `AirAp derives a melody from lyric text, writes it as a symbolic
score, and renders the score to MP3 through whichever synthesizer is
installed (fluidsynth, timidity, or ffmpeg's direct conversion).

Pipeline: lyrics → melody → score → audio`,
	Version: version,
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose an audio track from lyrics",
	Long: `Compose reads lyric text and renders it to an MP3 file.

Examples:
  airap compose --input verse.txt --output track.mp3
  airap compose -i verse.txt -o track.mp3 --bpm 96 --key Am
  cat verse.txt | airap compose -i - -o track.mp3`,
	RunE: runCompose,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which audio tools are installed",
	Long: `Doctor probes for the external tools the audio stage can use and
reports what the rendering chain will fall back on.`,
	RunE: runDoctor,
}

var (
	flagInput   string
	flagOutput  string
	flagBPM     int
	flagKey     string
	flagVerbose bool
)

func init() {
	composeCmd.Flags().StringVarP(&flagInput, "input", "i", "", "lyrics file, or - for stdin (required)")
	composeCmd.Flags().StringVarP(&flagOutput, "output", "o", "track.mp3", "output MP3 path")
	composeCmd.Flags().IntVar(&flagBPM, "bpm", 0, "tempo in beats per minute (default from config)")
	composeCmd.Flags().StringVar(&flagKey, "key", "", "musical key, e.g. C, F#, Am (default from config)")
	composeCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "show per-backend progress")
	composeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	lyrics, err := readLyrics(flagInput)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	orch := pipeline.NewOrchestrator(cfg, cmd.OutOrStdout(), flagVerbose)

	_, err = orch.Compose(ctx, pipeline.Request{
		Lyrics: lyrics,
		BPM:    flagBPM,
		Key:    flagKey,
	}, flagOutput)
	return err
}

func readLyrics(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("read lyrics: %w", err)
	}
	return string(data), nil
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	runner := exec.NewRunner()
	out := cmd.OutOrStdout()

	report := func(name, bin string) bool {
		if runner.Installed(bin) {
			fmt.Fprintf(out, "  %-12s found (%s)\n", name, bin)
			return true
		}
		fmt.Fprintf(out, "  %-12s not found\n", name)
		return false
	}

	fmt.Fprintln(out, "External tools:")
	haveFluidsynth := report("fluidsynth", cfg.FluidsynthBin)
	haveTimidity := report("timidity", cfg.TimidityBin)
	haveFFmpeg := report("ffmpeg", cfg.FFmpegBin)

	soundfont := transcode.LocateSoundfont(cfg)
	if soundfont != "" {
		fmt.Fprintf(out, "  %-12s found (%s)\n", "soundfont", soundfont)
	} else {
		fmt.Fprintf(out, "  %-12s not found\n", "soundfont")
	}

	fmt.Fprintln(out, "Rendering chain:")
	usable := false
	if haveFluidsynth && soundfont != "" && haveFFmpeg {
		fmt.Fprintln(out, "  fluidsynth + ffmpeg (primary)")
		usable = true
	}
	if haveTimidity && haveFFmpeg {
		fmt.Fprintln(out, "  timidity + ffmpeg (fallback)")
		usable = true
	}
	if haveFFmpeg {
		fmt.Fprintln(out, "  ffmpeg direct conversion (last resort)")
		usable = true
	}

	if !usable {
		return fmt.Errorf("no audio backend available; install fluidsynth with a GM soundfont, or timidity, plus ffmpeg")
	}
	return nil
}
