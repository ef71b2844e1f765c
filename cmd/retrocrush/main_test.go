// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/retrocrush/dsp/resample"
	"github.com/ik5/retrocrush/formats/wav"
	"github.com/ik5/retrocrush/pipeline"
)

func defaults() *CLI {
	return &CLI{
		Bits:           4,
		Rate:           11025,
		InternalRate:   44100,
		Mix:            1,
		Quality:        "fast",
		NoiseReduction: 0.8,
		Hum:            "both",
		Mu:             255,
		WavBits:        8,
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	cfg, err := buildConfig(defaults())
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.QuantizationLevels() != 16 || cfg.OutputRate != 11025 {
		t.Errorf("buildConfig() = %+v", cfg)
	}
	if !cfg.ApplyNotch || len(cfg.NotchCandidates) != 2 {
		t.Errorf("notch = %v %v, want both candidates", cfg.ApplyNotch, cfg.NotchCandidates)
	}

	args := defaults()
	args.Hum = "off"
	args.Quality = "high"
	args.NoNormalize = true
	cfg, err = buildConfig(args)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.ApplyNotch || cfg.Quality != resample.High || cfg.PeakNormalize {
		t.Errorf("buildConfig() = %+v", cfg)
	}

	args = defaults()
	args.Bits = 20
	if _, err := buildConfig(args); !errors.Is(err, pipeline.ErrInvalidConfig) {
		t.Errorf("buildConfig(bits=20) error = %v, want ErrInvalidConfig", err)
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	args := defaults()
	args.Input = "/music/song.mp3"
	if got := outputPath(args); got != "/music/song-retro.wav" {
		t.Errorf("outputPath() = %q", got)
	}

	args.Output = "out.wav"
	if got := outputPath(args); got != "out.wav" {
		t.Errorf("outputPath() = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := newRegistry()
	for _, ext := range []string{"wav", "mp3", "ogg", "aiff", "aif"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("no decoder for %q", ext)
		}
	}
	if _, ok := reg.Get("flac"); ok {
		t.Error("unexpected decoder for flac")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "tone.wav")

	pcm := make([]int16, 8000)
	for i := range pcm {
		if (i/20)%2 == 0 {
			pcm[i] = 8000
		} else {
			pcm[i] = -8000
		}
	}
	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.WriteWAV16(f, 8000, pcm); err != nil {
		t.Fatal(err)
	}
	f.Close()

	args := defaults()
	args.Input = in
	args.WavBits = 16
	args.Seed = 1
	if err := run(args); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := os.Open(filepath.Join(dir, "tone-retro.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	src, err := wav.Decoder{}.Decode(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if src.SampleRate() != 11025 || src.BitDepth() != 16 || src.Channels() != 1 {
		t.Errorf("output format = %d Hz %d-bit %d ch", src.SampleRate(), src.BitDepth(), src.Channels())
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	args := defaults()
	args.Input = "song.flac"
	if err := run(args); err == nil {
		t.Error("run() expected an error for flac input")
	}
}
