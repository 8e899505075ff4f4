// Public domain.

package astrom

import (
	"errors"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/lmfit"
	"github.com/soniakeys/unit"
)

// MotionFit is a linear great-circle fit to a series of sky positions,
// the usual first model for the apparent motion of a moving source.
type MotionFit struct {
	lmf *lmfit.LmFit
	t0  float64
}

// NewMotionFit fits linear motion along a great circle to positions
// observed at times mjd.  At least two samples are required and times
// must strictly increase.
func NewMotionFit(mjd []float64, pos coord.EquaS) (*MotionFit, error) {
	if len(mjd) < 2 {
		return nil, errors.New("astrom: motion fit needs at least two positions")
	}
	if len(mjd) != len(pos) {
		return nil, errors.New("astrom: time and position counts differ")
	}
	for i := 1; i < len(mjd); i++ {
		if mjd[i] <= mjd[i-1] {
			return nil, errors.New("astrom: observation times must increase")
		}
	}
	return &MotionFit{lmf: lmfit.New(mjd, pos), t0: mjd[0]}, nil
}

// Pos returns the fitted position at time mjd.
func (m *MotionFit) Pos(mjd float64) coord.Equa {
	return *m.lmf.Pos(mjd)
}

// Rms returns the rms of great-circle residuals of the fit.
func (m *MotionFit) Rms() unit.Angle {
	return m.lmf.Rms()
}
