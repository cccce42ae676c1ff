package analysis

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestFFTConstantSignal(t *testing.T) {
	got := FFT([]float64{1, 1, 1, 1})
	if !scalar.EqualWithinAbs(real(got[0]), 4, 1e-12) {
		t.Errorf("DC bin %v, want 4", got[0])
	}
	for k := 1; k < 4; k++ {
		if math.Hypot(real(got[k]), imag(got[k])) > 1e-12 {
			t.Errorf("bin %d not zero: %v", k, got[k])
		}
	}
}

func TestFFTSingleTone(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := Spectrum(data)
	peak := 0
	for k := range ps {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 4 {
		t.Fatalf("peak at bin %d, want 4", peak)
	}
}

func TestSpectrumPadsAndDemeans(t *testing.T) {
	// 6 samples pad to 8; the large offset must not leak into bin 0.
	data := []float64{100, 101, 100, 99, 100, 101}
	ps := Spectrum(data)
	if len(ps) != 4 {
		t.Fatalf("got %d bins, want 4", len(ps))
	}
}

func TestSpectrumEmpty(t *testing.T) {
	if got := Spectrum(nil); got != nil {
		t.Errorf("empty input produced %v", got)
	}
}

func TestDominantPeriod(t *testing.T) {
	// 8 full cycles of a 2-second period sampled at dt=0.125 over 128
	// samples.
	dt := 0.125
	n := 128
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * float64(i) * dt / 2)
	}

	got := DominantPeriod(data, dt)
	if !scalar.EqualWithinAbs(got, 2, 1e-9) {
		t.Fatalf("got period %v, want 2", got)
	}
}

func TestDominantPeriodDegenerate(t *testing.T) {
	if got := DominantPeriod([]float64{1, 2}, 0.1); got != 0 {
		t.Errorf("short series gave %v", got)
	}
	if got := DominantPeriod(make([]float64, 16), 0.1); got != 0 {
		t.Errorf("flat series gave %v", got)
	}
}
