// SPDX-License-Identifier: EPL-2.0

package retrocrush

import (
	"fmt"

	"github.com/ik5/retrocrush/audio"
	"github.com/ik5/retrocrush/dsp/resample"
	"github.com/ik5/retrocrush/pipeline"
	"github.com/ik5/retrocrush/waveform"
	"gonum.org/v1/gonum/floats"
)

// ConvertToRetro decodes everything src produces, folds it to mono and runs
// the retro conversion with cfg.
//
// mix blends the processed signal with the original: 0 returns the
// original resampled to cfg.OutputRate, 1 returns the fully processed
// signal. The blend happens before the final clip and 8-bit packing.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	res, err := retrocrush.ConvertToRetro(src, pipeline.DefaultConfig(), 1)
//	if err != nil {
//	    return err
//	}
//	wav.WriteWAV8(out, res.SampleRate, res.Samples)
func ConvertToRetro(src audio.Source, cfg pipeline.Config, mix float64, opts ...pipeline.Option) (*pipeline.Result, error) {
	if !(mix >= 0 && mix <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMix, mix)
	}

	bitDepth, rate := src.BitDepth(), src.SampleRate()
	pcm, err := audio.ReadAll(audio.NewMonoMixer(src))
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}

	dry, err := waveform.Normalize(pcm, bitDepth, rate)
	if err != nil {
		return nil, &pipeline.StageError{Stage: pipeline.Idle, Err: err}
	}

	res, err := pipeline.Run(dry, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if mix == 1 {
		return res, nil
	}

	if cfg.PeakNormalize {
		dry = dry.PeakNormalized()
	}
	drySignal, err := resample.Resample(dry.Samples, dry.SampleRate, cfg.OutputRate, cfg.Quality)
	if err != nil {
		return nil, &pipeline.StageError{Stage: pipeline.ResampledOutput, Err: err}
	}

	blended, err := Mix(drySignal, res.Signal, mix)
	if err != nil {
		return nil, err
	}
	waveform.Clip(blended, pipeline.ClipLimit)

	res.Signal = blended
	res.Samples = waveform.Pack8(blended)
	return res, nil
}

// Mix returns dry + amount*(wet-dry) with the length of wet. A shorter dry
// signal is treated as zero past its end.
func Mix(dry, wet []float64, amount float64) ([]float64, error) {
	if !(amount >= 0 && amount <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMix, amount)
	}

	base := make([]float64, len(wet))
	copy(base, dry)

	diff := make([]float64, len(wet))
	floats.SubTo(diff, wet, base)

	out := make([]float64, len(wet))
	floats.AddScaledTo(out, base, amount, diff)
	return out, nil
}
