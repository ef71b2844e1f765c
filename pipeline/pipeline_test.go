// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/retrocrush/dsp/filter"
	"github.com/ik5/retrocrush/dsp/spectral"
	"github.com/ik5/retrocrush/internal/audiotest"
	"github.com/ik5/retrocrush/waveform"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func withTap(fn func(State, []float64)) Option {
	return func(r *runner) { r.tap = fn }
}

func quietLogger() logrus.FieldLogger {
	l, _ := logtest.NewNullLogger()
	return l
}

func sine440() waveform.Waveform {
	return waveform.Waveform{Samples: audiotest.Sine(44100, 44100, 440, 0.5), SampleRate: 44100}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestRun_Sine440(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Seed = 1

	var quantized []float64
	res, err := Run(sine440(), cfg, WithLogger(quietLogger()), withTap(func(s State, x []float64) {
		if s == Quantized {
			quantized = append([]float64(nil), x...)
		}
	}))
	require.NoError(t, err)

	assert.Equal(t, 11025, res.SampleRate)
	assert.InDelta(t, 11025, len(res.Samples), 1)
	require.Len(t, res.Signal, len(res.Samples))
	assert.Empty(t, res.Skipped)

	for i, v := range res.Signal {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "sample %d", i)
		require.LessOrEqual(t, math.Abs(v), ClipLimit, "sample %d", i)
	}

	levels := map[float64]struct{}{}
	for _, v := range quantized {
		levels[v] = struct{}{}
	}
	assert.LessOrEqual(t, len(levels), 16)
	assert.Greater(t, len(levels), 2)

	// the tone survives the trip, attenuated by the gate
	var peak int8
	for _, s := range res.Samples {
		peak = max(peak, s)
	}
	assert.Greater(t, peak, int8(10))
}

func TestRun_Silence(t *testing.T) {
	t.Parallel()

	w := waveform.Waveform{Samples: make([]float64, 44100), SampleRate: 44100}
	res, err := Run(w, DefaultConfig(), WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Len(t, res.Samples, 11025)
	for i, s := range res.Samples {
		require.Zero(t, s, "sample %d", i)
	}
}

func TestRun_OutputIsSymmetric(t *testing.T) {
	t.Parallel()

	w := waveform.Waveform{Samples: audiotest.Sine(44100, 44100, 440, 0.9), SampleRate: 44100}

	for _, bits := range []int{1, 2, 4, 8} {
		cfg := DefaultConfig()
		cfg.BitDepth = bits
		cfg.NoiseReductionStrength = 0
		cfg.Seed = 3

		res, err := Run(w, cfg, WithLogger(quietLogger()))
		require.NoError(t, err, "bits=%d", bits)

		lo, hi := slices.Min(res.Signal), slices.Max(res.Signal)
		assert.Greater(t, hi, 0.9, "bits=%d", bits)
		assert.Less(t, lo, -0.9, "bits=%d", bits)
		assert.InDelta(t, hi, -lo, 0.05, "bits=%d", bits)
		assert.InDelta(t, 0, floats.Sum(res.Signal)/float64(len(res.Signal)), 0.02, "bits=%d", bits)
	}
}

func TestRun_OutputBounds(t *testing.T) {
	t.Parallel()

	// a clipped square wave drives every stage hard
	x := make([]float64, 22050)
	for i := range x {
		if (i/50)%2 == 0 {
			x[i] = 1
		} else {
			x[i] = -1
		}
	}

	for _, bits := range []int{1, 4, 8, 16} {
		cfg := DefaultConfig()
		cfg.BitDepth = bits
		res, err := Run(waveform.Waveform{Samples: x, SampleRate: 22050}, cfg, WithLogger(quietLogger()))
		require.NoError(t, err, "bits=%d", bits)

		for _, v := range res.Signal {
			assert.LessOrEqual(t, math.Abs(v), ClipLimit)
		}
		for _, s := range res.Samples {
			assert.GreaterOrEqual(t, s, int8(-125))
			assert.LessOrEqual(t, s, int8(125))
		}
	}
}

func TestRun_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	w := sine440()
	before := w.Clone()
	cfg := DefaultConfig()

	_, err := Run(w, cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, before.Samples, w.Samples)
	assert.Equal(t, []float64{50, 60}, cfg.NotchCandidates)
}

func TestRun_SkipsInvalidNotchCandidate(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	rec := &recorder{}

	cfg := DefaultConfig()
	cfg.NotchCandidates = []float64{60, 20000}

	res, err := Run(sine440(), cfg, WithLogger(logger), WithNotifier(rec))
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, Notched, res.Skipped[0].Stage)
	assert.ErrorIs(t, res.Skipped[0].Err, filter.ErrInvalidCutoff)
	assert.Contains(t, res.Skipped[0].Detail, "20000")

	var skipped int
	for _, e := range rec.events {
		if e.Kind == StageSkipped {
			skipped++
			assert.Equal(t, Notched, e.Stage)
		}
	}
	assert.Equal(t, 1, skipped)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRun_SkipsGateOnShortSignal(t *testing.T) {
	t.Parallel()

	// shorter than the STFT window
	w := waveform.Waveform{Samples: audiotest.Sine(1000, 44100, 440, 0.5), SampleRate: 44100}
	res, err := Run(w, DefaultConfig(), WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SpectralGated, res.Skipped[0].Stage)
	assert.ErrorIs(t, res.Skipped[0].Err, spectral.ErrSpectralTransform)
	assert.Len(t, res.Samples, 250)
}

func TestRun_GateDisabled(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	cfg := DefaultConfig()
	cfg.NoiseReductionStrength = 0
	cfg.ApplyNotch = false

	w := waveform.Waveform{Samples: audiotest.Sine(1000, 44100, 440, 0.5), SampleRate: 44100}
	res, err := Run(w, cfg, WithLogger(quietLogger()), WithNotifier(rec))
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	for _, e := range rec.events {
		assert.NotEqual(t, SpectralGated, e.Stage)
		assert.NotEqual(t, Notched, e.Stage)
	}
}

func TestRun_EventsMoveForward(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	_, err := Run(sine440(), DefaultConfig(), WithLogger(quietLogger()), WithNotifier(rec))
	require.NoError(t, err)

	require.NotEmpty(t, rec.events)
	last := Idle
	var completed []State
	for _, e := range rec.events {
		assert.GreaterOrEqual(t, e.Stage, last, "moved back from %s to %s", last, e.Stage)
		last = e.Stage
		if e.Kind == StageCompleted {
			completed = append(completed, e.Stage)
		}
	}

	assert.Equal(t, []State{
		Normalized, ResampledInternal, HighPassed, Notched, SpectralGated, LowPassed,
		ResampledOutput, Encoded, Quantized, Decoded, Smoothed, Clipped, Packed, Done,
	}, completed)
}

func TestRun_FatalErrors(t *testing.T) {
	t.Parallel()

	badConfig := DefaultConfig()
	badConfig.BitDepth = 0

	badLowPass := DefaultConfig()
	badLowPass.OutputRate = 96000
	badLowPass.LowPassMaxHz = 30000

	tests := []struct {
		name  string
		w     waveform.Waveform
		cfg   Config
		stage State
		want  error
	}{
		{"invalid config", sine440(), badConfig, Idle, ErrInvalidConfig},
		{"empty waveform", waveform.Waveform{SampleRate: 44100}, DefaultConfig(), Idle, waveform.ErrInvalidInput},
		{"zero rate", waveform.Waveform{Samples: []float64{0.1}}, DefaultConfig(), Idle, waveform.ErrInvalidInput},
		{"nan sample", waveform.Waveform{Samples: []float64{0, math.NaN()}, SampleRate: 44100}, DefaultConfig(), Idle, waveform.ErrInvalidInput},
		{"anti-alias above nyquist", sine440(), badLowPass, LowPassed, filter.ErrFilterDesign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			res, err := Run(tt.w, tt.cfg, WithLogger(quietLogger()), WithNotifier(rec))
			require.Error(t, err)
			assert.Nil(t, res)

			assert.ErrorIs(t, err, ErrFatal)
			assert.ErrorIs(t, err, tt.want)

			var se *StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.stage, se.Stage)

			require.NotEmpty(t, rec.events)
			assert.Equal(t, StageFailed, rec.events[len(rec.events)-1].Kind)
		})
	}
}

func TestRunPCM(t *testing.T) {
	t.Parallel()

	pcm := make([]int, 8000)
	for i, v := range audiotest.Sine(8000, 8000, 440, 0.5) {
		pcm[i] = int(v * 32767)
	}

	cfg := DefaultConfig()
	cfg.InternalRate = 8000
	cfg.OutputRate = 4000
	cfg.STFTWindowSize = 256

	res, err := RunPCM(pcm, 16, 8000, cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Len(t, res.Samples, 4000)
	assert.Equal(t, 4000, res.SampleRate)

	_, err = RunPCM(pcm, 0, 8000, cfg, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, waveform.ErrInvalidInput)

	_, err = RunPCM(nil, 16, 8000, cfg, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, waveform.ErrInvalidInput)
}

func TestRun_SeedIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Seed = 99

	a, err := Run(sine440(), cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	b, err := Run(sine440(), cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)
}

func TestRun_Concurrent(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Seed = 5
	w := waveform.Waveform{Samples: audiotest.Sine(8820, 44100, 440, 0.5), SampleRate: 44100}

	want, err := Run(w, cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Go(func() {
			results[i], errs[i] = Run(w, cfg, WithLogger(quietLogger()))
		})
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want.Samples, results[i].Samples)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "spectral-gated", SpectralGated.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "State(99)", State(99).String())
	assert.Equal(t, "skipped", StageSkipped.String())
}

func TestStageError(t *testing.T) {
	t.Parallel()

	err := &StageError{Stage: HighPassed, Err: filter.ErrInvalidCutoff}
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, filter.ErrFilterDesign)
	assert.Contains(t, err.Error(), "high-passed")
}
