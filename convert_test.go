// SPDX-License-Identifier: EPL-2.0

package retrocrush

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/retrocrush/audio"
	"github.com/ik5/retrocrush/internal/audiotest"
	"github.com/ik5/retrocrush/pipeline"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func quiet() pipeline.Option {
	l, _ := logtest.NewNullLogger()
	return pipeline.WithLogger(l)
}

func TestConvertToRetro_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440, 0.5)
	cfg := pipeline.DefaultConfig()
	cfg.Seed = 3

	res, err := ConvertToRetro(src, cfg, 1, quiet())
	if err != nil {
		t.Fatalf("ConvertToRetro() error = %v", err)
	}

	if res.SampleRate != 11025 {
		t.Errorf("SampleRate = %d, want 11025", res.SampleRate)
	}
	if len(res.Samples) != 11025 {
		t.Errorf("got %d samples, want 11025", len(res.Samples))
	}
	for i, v := range res.Signal {
		if math.Abs(v) > pipeline.ClipLimit {
			t.Fatalf("Signal[%d] = %v exceeds clip limit", i, v)
		}
	}
}

func TestConvertToRetro_EightBitSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(22050, 1, 22050, 440, 0.5).WithBitDepth(8)

	res, err := ConvertToRetro(src, pipeline.DefaultConfig(), 1, quiet())
	if err != nil {
		t.Fatalf("ConvertToRetro() error = %v", err)
	}
	if len(res.Samples) != 11025 {
		t.Errorf("got %d samples, want 11025", len(res.Samples))
	}
}

func TestConvertToRetro_DryMix(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 1, 44100, 440, 0.5)
	cfg := pipeline.DefaultConfig()
	cfg.PeakNormalize = false

	res, err := ConvertToRetro(src, cfg, 0, quiet())
	if err != nil {
		t.Fatalf("ConvertToRetro() error = %v", err)
	}

	// a fully dry mix is the input at the output rate
	want := audiotest.Sine(11025, 11025, 440, 0.5)
	for i := 100; i < len(want)-100; i++ {
		if math.Abs(res.Signal[i]-want[i]) > 1e-3 {
			t.Fatalf("Signal[%d] = %v, want %v", i, res.Signal[i], want[i])
		}
	}
}

func TestConvertToRetro_InvalidMix(t *testing.T) {
	t.Parallel()

	for _, mix := range []float64{-0.1, 1.5, math.NaN()} {
		src := audiotest.NewSilentSource(8000, 1, 8000)
		_, err := ConvertToRetro(src, pipeline.DefaultConfig(), mix, quiet())
		if !errors.Is(err, ErrInvalidMix) {
			t.Errorf("mix %v: error = %v, want ErrInvalidMix", mix, err)
		}
	}
}

func TestConvertToRetro_EmptySource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 0)
	_, err := ConvertToRetro(src, pipeline.DefaultConfig(), 1, quiet())
	if !errors.Is(err, audio.ErrEmptySource) {
		t.Errorf("error = %v, want ErrEmptySource", err)
	}
}

func TestConvertToRetro_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := pipeline.DefaultConfig()
	cfg.OutputRate = 0

	src := audiotest.NewSineSource(8000, 1, 8000, 440, 0.5)
	_, err := ConvertToRetro(src, cfg, 1, quiet())
	if !errors.Is(err, pipeline.ErrFatal) || !errors.Is(err, pipeline.ErrInvalidConfig) {
		t.Errorf("error = %v, want fatal invalid config", err)
	}
}

func TestMix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dry    []float64
		wet    []float64
		amount float64
		want   []float64
	}{
		{"all wet", []float64{1, 1}, []float64{0, 0.5}, 1, []float64{0, 0.5}},
		{"all dry", []float64{1, 1}, []float64{0, 0.5}, 0, []float64{1, 1}},
		{"half", []float64{1, -1}, []float64{0, 0}, 0.5, []float64{0.5, -0.5}},
		{"short dry", []float64{1}, []float64{0, 1}, 0.5, []float64{0.5, 0.5}},
		{"long dry", []float64{1, 1, 1}, []float64{0}, 0.25, []float64{0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Mix(tt.dry, tt.wet, tt.amount)
			if err != nil {
				t.Fatalf("Mix() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Mix() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Mix()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	if _, err := Mix(nil, nil, 2); !errors.Is(err, ErrInvalidMix) {
		t.Errorf("Mix(amount=2) error = %v, want ErrInvalidMix", err)
	}
}
