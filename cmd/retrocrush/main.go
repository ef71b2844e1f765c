// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ik5/retrocrush"
	"github.com/ik5/retrocrush/audio"
	"github.com/ik5/retrocrush/dsp/resample"
	"github.com/ik5/retrocrush/formats/aiff"
	"github.com/ik5/retrocrush/formats/mp3"
	"github.com/ik5/retrocrush/formats/vorbis"
	"github.com/ik5/retrocrush/formats/wav"
	"github.com/ik5/retrocrush/internal/cli"
	"github.com/ik5/retrocrush/internal/mains"
	"github.com/ik5/retrocrush/pipeline"
	"github.com/ik5/retrocrush/utils"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

const description = "Clean bit crusher: low-rate, low-bit retro audio without the harsh artifacts"

// CLI defines the command-line interface.
type CLI struct {
	Version bool   `short:"v" help:"Show version information."`
	Input   string `arg:"" name:"input" type:"existingfile" optional:"" help:"Audio file to convert (wav, mp3, ogg, aiff)."`
	Output  string `short:"o" type:"path" help:"Output WAV file. Defaults to <input>-retro.wav."`

	Bits           int     `short:"b" default:"4" help:"Quantizer bit depth, 1 to 16."`
	Rate           int     `short:"r" default:"11025" help:"Output sample rate in Hz."`
	InternalRate   int     `default:"44100" help:"Processing sample rate in Hz."`
	Mix            float64 `short:"m" default:"1" help:"Dry/wet mix: 0 keeps the original, 1 is fully processed."`
	Quality        string  `short:"q" default:"fast" enum:"fast,medium,high" help:"Resampler quality (fast, medium, high)."`
	NoiseReduction float64 `short:"n" default:"0.8" help:"Spectral noise gate strength, 0 to 1. 0 disables it."`
	Hum            string  `default:"both" enum:"auto,50,60,both,off" help:"Mains hum to notch out (auto, 50, 60, both, off)."`
	Mu             float64 `default:"255" help:"Mu-law compression parameter."`
	Seed           uint64  `default:"0" help:"Dither seed. 0 picks a random one."`
	WavBits        int     `default:"8" enum:"8,16" help:"Sample width of the written WAV (8 or 16)."`
	NoNormalize    bool    `help:"Do not scale the input to full scale first."`
	Verbose        bool    `help:"Log every processing stage."`
}

func main() {
	args := &CLI{}
	ctx := kong.Parse(args,
		kong.Name("retrocrush"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	if args.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if args.Input == "" {
		cli.PrintError("no input file specified")
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}

	if err := run(args); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

func buildConfig(args *CLI) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	cfg.BitDepth = args.Bits
	cfg.OutputRate = args.Rate
	cfg.InternalRate = args.InternalRate
	cfg.NoiseReductionStrength = args.NoiseReduction
	cfg.Mu = args.Mu
	cfg.Seed = args.Seed
	cfg.PeakNormalize = !args.NoNormalize

	q, err := resample.ParseQuality(args.Quality)
	if err != nil {
		return cfg, err
	}
	cfg.Quality = q

	hum, err := mains.Candidates(args.Hum)
	if err != nil {
		return cfg, err
	}
	cfg.NotchCandidates = hum
	cfg.ApplyNotch = len(hum) > 0

	return cfg, cfg.Validate()
}

func outputPath(args *CLI) string {
	if args.Output != "" {
		return args.Output
	}
	ext := filepath.Ext(args.Input)
	return strings.TrimSuffix(args.Input, ext) + "-retro.wav"
}

func run(args *CLI) error {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if args.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := buildConfig(args)
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(args.Input), "."))
	dec, ok := newRegistry().Get(ext)
	if !ok {
		return fmt.Errorf("unsupported format %q", ext)
	}

	in, err := os.Open(args.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args.Input, err)
	}
	defer src.Close()

	notify := pipeline.NotifierFunc(func(e pipeline.Event) {
		if e.Kind == pipeline.StageSkipped {
			cli.PrintWarning(fmt.Sprintf("%s skipped (%s): %v", e.Stage, e.Detail, e.Err))
		}
	})

	start := time.Now()
	res, err := retrocrush.ConvertToRetro(src, cfg, args.Mix,
		pipeline.WithLogger(logger),
		pipeline.WithNotifier(notify),
	)
	if err != nil {
		return err
	}

	outPath := outputPath(args)
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if args.WavBits == 16 {
		pcm := make([]int16, len(res.Samples))
		for i, s := range res.Samples {
			pcm[i] = utils.Int8ToInt16(s)
		}
		err = wav.WriteWAV16(out, res.SampleRate, pcm)
	} else {
		err = wav.WriteWAV8(out, res.SampleRate, res.Samples)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	var peak float64
	for _, s := range res.Samples {
		peak = max(peak, math.Abs(float64(utils.Int8ToFloat32(s))))
	}

	fmt.Println(cli.TitleStyle.Render("retrocrush"))
	cli.PrintField(os.Stdout, "Input", args.Input)
	cli.PrintField(os.Stdout, "Output", outPath)
	cli.PrintField(os.Stdout, "Format", fmt.Sprintf("%d Hz, %d-bit levels, %d-bit WAV", res.SampleRate, cfg.BitDepth, args.WavBits))
	cli.PrintField(os.Stdout, "Duration", time.Duration(float64(len(res.Samples))/float64(res.SampleRate)*float64(time.Second)).Round(time.Millisecond))
	cli.PrintField(os.Stdout, "Peak", fmt.Sprintf("%.1f dBFS", 20*math.Log10(max(peak, 1e-6))))
	cli.PrintField(os.Stdout, "Skipped", len(res.Skipped))
	cli.PrintField(os.Stdout, "Elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}
