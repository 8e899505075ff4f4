// Public domain.

// Package stats implements a few closed form statistical tests that come
// up in astrometric model comparison and survey work.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSimplerBetter is returned by FTestProbability when the model with
// fewer parameters has the smaller chi-square.  No F-test is needed in
// that case; the simpler model wins outright.
var ErrSimplerBetter = errors.New("stats: solution better with fewer parameters")

// FTestProbability returns the F-test probability that the simpler of two
// nested models is correct.
//
// N is the number of data points, p1 and chi2a the parameter count and
// chi-square of the simpler model, p2 and chi2b those of the fuller model.
// For example p1 = 5 parallax and proper motion parameters and p2 = p1+7
// with orbital parameters added.
func FTestProbability(n, p1 int, chi2a float64, p2 int, chi2b float64) (float64, error) {
	if p2 <= p1 {
		return 0, fmt.Errorf("stats: p2 = %d must exceed p1 = %d", p2, p1)
	}
	if n <= p2 {
		return 0, fmt.Errorf("stats: n = %d leaves no degrees of freedom", n)
	}
	if chi2a < chi2b {
		return 0, ErrSimplerBetter
	}
	nu1 := float64(p2 - p1)
	nu2 := float64(n - p2)
	f0 := nu2 / nu1 * (chi2a - chi2b) / chi2b
	return mathext.RegIncBeta(.5*nu2, .5*nu1, nu2/(nu2+f0*nu1)), nil
}

// SigmaToFraction converts a sigma value to the two-sided fractional
// probability it encloses, e.g. 1 sigma ≈ .683.
func SigmaToFraction(sigma float64) float64 {
	return 1 - 2*distuv.UnitNormal.CDF(-sigma)
}

// FractionToSigma is the inverse of SigmaToFraction.
func FractionToSigma(fraction float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-fraction)/2)
}

// FractionInterval is a fraction with asymmetric uncertainties, as
// returned by BinomialFractionUncertainty.
type FractionInterval struct {
	Fraction     float64
	ErrLo, ErrHi float64
}

// binomial interval confidence level, 1 sigma two-sided
const binomialConfidence = .683

// BinomialFractionUncertainty returns the fraction k/n with its 68.3%
// confidence interval from the beta distribution.
//
// k is the number of events, n the number of reference trials.  With
// n == 0 all three values are zero.
func BinomialFractionUncertainty(k, n int) FractionInterval {
	if n == 0 {
		return FractionInterval{}
	}
	b := distuv.Beta{Alpha: float64(k) + 1, Beta: float64(n-k) + 1}
	pLo := b.Quantile((1 - binomialConfidence) / 2)
	pHi := b.Quantile(1 - (1-binomialConfidence)/2)
	frac := float64(k) / float64(n)
	return FractionInterval{
		Fraction: frac,
		ErrLo:    frac - pLo,
		ErrHi:    pHi - frac,
	}
}
