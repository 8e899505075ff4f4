// Public domain.

package stats

import (
	"sort"

	xrand "golang.org/x/exp/rand"
)

// BootstrapFraction estimates a confidence interval on the fraction k/n
// by Monte Carlo resampling.  It serves as a sanity check on the closed
// form BinomialFractionUncertainty for small samples.
//
// nSim draws of n Bernoulli trials with success probability k/n are
// made with rnd; the interval covers the central 68.3% of the resampled
// fractions.  rnd may be nil, in which case an unseeded PCG source is
// used and results vary from run to run.
func BootstrapFraction(k, n, nSim int, rnd *xrand.Rand) FractionInterval {
	if n == 0 || nSim == 0 {
		return FractionInterval{}
	}
	if rnd == nil {
		rnd = xrand.New(&xrand.PCGSource{})
	}
	p := float64(k) / float64(n)
	fs := make([]float64, nSim)
	for i := range fs {
		hits := 0
		for j := 0; j < n; j++ {
			if rnd.Float64() < p {
				hits++
			}
		}
		fs[i] = float64(hits) / float64(n)
	}
	sort.Float64s(fs)
	loIx := int(float64(nSim) * (1 - binomialConfidence) / 2)
	hiIx := int(float64(nSim) * (1 + binomialConfidence) / 2)
	if hiIx >= nSim {
		hiIx = nSim - 1
	}
	return FractionInterval{
		Fraction: p,
		ErrLo:    p - fs[loIx],
		ErrHi:    fs[hiIx] - p,
	}
}
