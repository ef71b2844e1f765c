// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"time"

	"github.com/ik5/retrocrush/dsp/filter"
	"github.com/ik5/retrocrush/dsp/mulaw"
	"github.com/ik5/retrocrush/dsp/resample"
	"github.com/ik5/retrocrush/dsp/spectral"
	"github.com/ik5/retrocrush/waveform"
	"github.com/sirupsen/logrus"
)

// ClipLimit is the largest magnitude left in the output before packing.
const ClipLimit = 0.99

// Result is the output of a successful conversion.
type Result struct {
	// Samples is signed 8-bit mono PCM at SampleRate.
	Samples    []int8
	SampleRate int
	// Signal is the clipped floating-point signal Samples was packed from.
	Signal []float64
	// Skipped lists the tolerated failures, in the order they happened.
	Skipped []StageSkip
}

type runner struct {
	cfg      Config
	log      logrus.FieldLogger
	notifier Notifier
	skipped  []StageSkip
	tap      func(State, []float64)
}

// Run converts w into the retro output described by cfg. Stages run in a
// fixed order on the whole buffer. A failing notch candidate or spectral
// gate is skipped and recorded; any other failure returns a *StageError
// and no result.
func Run(w waveform.Waveform, cfg Config, opts ...Option) (*Result, error) {
	r := &runner{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}
	r.cfg.NotchCandidates = cfg.Candidates()
	for _, opt := range opts {
		opt(r)
	}

	return r.run(w)
}

// RunPCM normalizes signed integer PCM and runs the conversion on it.
func RunPCM(samples []int, bitDepth, sampleRate int, cfg Config, opts ...Option) (*Result, error) {
	w, err := waveform.Normalize(samples, bitDepth, sampleRate)
	if err != nil {
		return nil, &StageError{Stage: Idle, Err: err}
	}
	return Run(w, cfg, opts...)
}

func (r *runner) run(w waveform.Waveform) (*Result, error) {
	cfg := r.cfg
	log := r.log.WithFields(logrus.Fields{
		"function":    "Run",
		"input_rate":  w.SampleRate,
		"output_rate": cfg.OutputRate,
		"bit_depth":   cfg.BitDepth,
	})
	log.WithField("samples", w.Len()).Debug("Starting conversion")
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, r.fail(Idle, err)
	}
	if err := w.Validate(); err != nil {
		return nil, r.fail(Idle, err)
	}
	if waveform.HasNonFinite(w.Samples) {
		return nil, r.fail(Idle, fmt.Errorf("%w: non-finite samples", waveform.ErrInvalidInput))
	}

	x := w.Clone().Samples
	var err error

	err = r.stage(Normalized, &x, func(in []float64) ([]float64, error) {
		waveform.Clip(in, 1)
		if cfg.PeakNormalize {
			return waveform.Waveform{Samples: in, SampleRate: w.SampleRate}.PeakNormalized().Samples, nil
		}
		return in, nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ResampledInternal, &x, func(in []float64) ([]float64, error) {
		return resample.Resample(in, w.SampleRate, cfg.InternalRate, cfg.Quality)
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(HighPassed, &x, func(in []float64) ([]float64, error) {
		return r.filter(filter.Spec{Kind: filter.HighPass, CutoffHz: cfg.HighPassHz, Order: cfg.FilterOrder}, in)
	})
	if err != nil {
		return nil, err
	}

	if cfg.ApplyNotch {
		x = r.notch(x)
	}

	if cfg.NoiseReductionStrength > 0 {
		x = r.gate(x)
	}

	err = r.stage(LowPassed, &x, func(in []float64) ([]float64, error) {
		return r.filter(filter.Spec{Kind: filter.LowPass, CutoffHz: cfg.AntiAliasCutoff(), Order: cfg.FilterOrder}, in)
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ResampledOutput, &x, func(in []float64) ([]float64, error) {
		return resample.Resample(in, cfg.InternalRate, cfg.OutputRate, cfg.Quality)
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(Encoded, &x, func(in []float64) ([]float64, error) {
		return mulaw.EncodeAll(in, cfg.Mu), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(Quantized, &x, func(in []float64) ([]float64, error) {
		q, err := mulaw.NewQuantizer(cfg.QuantizationLevels(), cfg.Seed)
		if err != nil {
			return nil, err
		}
		return q.QuantizeAll(in), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(Decoded, &x, func(in []float64) ([]float64, error) {
		return mulaw.DecodeAll(in, cfg.Mu), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(Smoothed, &x, func(in []float64) ([]float64, error) {
		return mulaw.Smooth3(in), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(Clipped, &x, func(in []float64) ([]float64, error) {
		waveform.Clip(in, ClipLimit)
		return in, nil
	})
	if err != nil {
		return nil, err
	}

	r.notify(Event{Stage: Packed, Kind: StageStarted})
	packed := waveform.Pack8(x)
	r.notify(Event{Stage: Packed, Kind: StageCompleted})

	log.WithFields(logrus.Fields{
		"samples": len(packed),
		"skipped": len(r.skipped),
		"elapsed": time.Since(start),
	}).Debug("Conversion finished")
	r.notify(Event{Stage: Done, Kind: StageCompleted})

	return &Result{
		Samples:    packed,
		SampleRate: cfg.OutputRate,
		Signal:     x,
		Skipped:    r.skipped,
	}, nil
}

// stage runs fn on *x and stores the result. Any error, or a result
// containing NaN or Inf, is fatal.
func (r *runner) stage(s State, x *[]float64, fn func([]float64) ([]float64, error)) error {
	r.notify(Event{Stage: s, Kind: StageStarted})
	start := time.Now()

	out, err := fn(*x)
	if err == nil && waveform.HasNonFinite(out) {
		err = ErrNonFinite
	}
	if err != nil {
		return r.fail(s, err)
	}
	*x = out
	if r.tap != nil {
		r.tap(s, out)
	}

	r.log.WithFields(logrus.Fields{
		"stage":   s.String(),
		"samples": len(out),
		"elapsed": time.Since(start),
	}).Debug("Stage completed")
	r.notify(Event{Stage: s, Kind: StageCompleted})

	return nil
}

func (r *runner) filter(spec filter.Spec, x []float64) ([]float64, error) {
	f, err := filter.Design(spec, r.cfg.InternalRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, err)
	}
	return f.FiltFilt(x), nil
}

// notch applies every usable hum candidate in order. A candidate that is
// out of range, cannot be designed or produces non-finite output is
// skipped and the signal from before it is kept.
func (r *runner) notch(x []float64) []float64 {
	r.notify(Event{Stage: Notched, Kind: StageStarted})

	for _, freq := range r.cfg.NotchCandidates {
		spec := filter.Spec{Kind: filter.Notch, CutoffHz: freq, Q: r.cfg.NotchQ}
		detail := spec.String()

		if !filter.NotchCandidateValid(freq, r.cfg.InternalRate) {
			r.skip(Notched, detail, fmt.Errorf("%w: %.1f Hz above %.0f%% of Nyquist",
				filter.ErrInvalidCutoff, freq, filter.MaxNotchFraction*100))
			continue
		}

		out, err := r.filter(spec, x)
		if err == nil && waveform.HasNonFinite(out) {
			err = ErrNonFinite
		}
		if err != nil {
			r.skip(Notched, detail, err)
			continue
		}

		x = out
		r.log.WithFields(logrus.Fields{
			"stage":  Notched.String(),
			"filter": detail,
		}).Debug("Notch applied")
	}

	r.notify(Event{Stage: Notched, Kind: StageCompleted})
	return x
}

// gate runs the spectral noise gate, keeping x unchanged if it fails.
func (r *runner) gate(x []float64) []float64 {
	r.notify(Event{Stage: SpectralGated, Kind: StageStarted})

	out, err := spectral.Gate(x, r.cfg.STFTWindowSize, r.cfg.NoiseReductionStrength)
	if err != nil {
		r.skip(SpectralGated, fmt.Sprintf("window %d", r.cfg.STFTWindowSize), err)
		return x
	}

	r.notify(Event{Stage: SpectralGated, Kind: StageCompleted})
	return out
}

func (r *runner) skip(s State, detail string, err error) {
	r.skipped = append(r.skipped, StageSkip{Stage: s, Detail: detail, Err: err})
	r.log.WithFields(logrus.Fields{
		"stage":  s.String(),
		"detail": detail,
		"error":  err.Error(),
	}).Warn("Stage skipped")
	r.notify(Event{Stage: s, Kind: StageSkipped, Detail: detail, Err: err})
}

func (r *runner) fail(s State, err error) error {
	r.log.WithFields(logrus.Fields{
		"stage": s.String(),
		"error": err.Error(),
	}).Error("Conversion failed")
	r.notify(Event{Stage: s, Kind: StageFailed, Err: err})
	return &StageError{Stage: s, Err: err}
}

func (r *runner) notify(e Event) {
	if r.notifier != nil {
		r.notifier.Notify(e)
	}
}
