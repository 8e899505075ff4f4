// Public domain.

package stats_test

import (
	"math"
	"testing"

	"github.com/soniakeys/uastro/stats"
)

func TestSigmaToFraction(t *testing.T) {
	cases := []struct {
		sigma, fraction float64
	}{
		{0, 0},
		{1, .6826895},
		{2, .9544997},
		{3, .9973002},
	}
	for _, c := range cases {
		if f := stats.SigmaToFraction(c.sigma); math.Abs(f-c.fraction) > 1e-6 {
			t.Errorf("SigmaToFraction(%g) = %g, want %g", c.sigma, f, c.fraction)
		}
	}
}

func TestFractionToSigma(t *testing.T) {
	// round trip
	for _, sigma := range []float64{.5, 1, 1.5, 2, 3} {
		f := stats.SigmaToFraction(sigma)
		if s := stats.FractionToSigma(f); math.Abs(s-sigma) > 1e-9 {
			t.Errorf("FractionToSigma(SigmaToFraction(%g)) = %g", sigma, s)
		}
	}
}

func TestFTestProbability(t *testing.T) {
	// identical fits: the extra parameters buy nothing, probability 1
	p, err := stats.FTestProbability(100, 5, 80, 12, 80)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p-1) > 1e-12 {
		t.Errorf("equal chi-square p = %g, want 1", p)
	}
	// a big chi-square drop should be significant
	p, err = stats.FTestProbability(100, 5, 300, 12, 80)
	if err != nil {
		t.Fatal(err)
	}
	if p > 1e-6 {
		t.Errorf("large improvement p = %g, want near 0", p)
	}
	if p <= 0 {
		t.Errorf("p = %g, want > 0", p)
	}
}

func TestFTestProbabilityErrors(t *testing.T) {
	if _, err := stats.FTestProbability(100, 5, 80, 12, 81); err != stats.ErrSimplerBetter {
		t.Errorf("chi2b > chi2a: err = %v, want ErrSimplerBetter", err)
	}
	if _, err := stats.FTestProbability(100, 12, 80, 5, 70); err == nil {
		t.Error("p2 <= p1 should fail")
	}
	if _, err := stats.FTestProbability(12, 5, 80, 12, 70); err == nil {
		t.Error("n <= p2 should fail")
	}
}

func TestBinomialFractionUncertainty(t *testing.T) {
	fi := stats.BinomialFractionUncertainty(0, 0)
	if fi.Fraction != 0 || fi.ErrLo != 0 || fi.ErrHi != 0 {
		t.Errorf("n = 0: got %+v, want zero value", fi)
	}
	fi = stats.BinomialFractionUncertainty(5, 10)
	if fi.Fraction != .5 {
		t.Errorf("Fraction = %g, want .5", fi.Fraction)
	}
	if fi.ErrLo <= 0 || fi.ErrHi <= 0 {
		t.Errorf("uncertainties must be positive: %+v", fi)
	}
	// symmetric case
	if math.Abs(fi.ErrLo-fi.ErrHi) > 1e-9 {
		t.Errorf("k = n/2 interval should be symmetric: %+v", fi)
	}
	// k = 0 still has an upper uncertainty
	fi = stats.BinomialFractionUncertainty(0, 20)
	if fi.Fraction != 0 {
		t.Errorf("Fraction = %g, want 0", fi.Fraction)
	}
	if fi.ErrHi <= 0 {
		t.Errorf("ErrHi = %g, want > 0", fi.ErrHi)
	}
	// uncertainties shrink with n
	a := stats.BinomialFractionUncertainty(5, 10)
	b := stats.BinomialFractionUncertainty(500, 1000)
	if b.ErrHi >= a.ErrHi {
		t.Errorf("ErrHi should shrink with n: %g vs %g", b.ErrHi, a.ErrHi)
	}
}
