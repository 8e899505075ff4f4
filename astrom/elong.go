// Public domain.

package astrom

import (
	"math"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
)

// EquaToCart returns the unit vector of an equatorial position.
func EquaToCart(eq coord.Equa) coord.Cart {
	sdec, cdec := math.Sincos(eq.Dec.Rad())
	sra, cra := math.Sincos(eq.RA.Rad())
	return coord.Cart{
		X: cra * cdec,
		Y: sra * cdec,
		Z: sdec,
	}
}

// Separation returns the angular separation of two equatorial positions.
func Separation(a, b coord.Equa) unit.Angle {
	ca := EquaToCart(a)
	cb := EquaToCart(b)
	d := ca.Dot(&cb)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return unit.Angle(math.Acos(d))
}

// SolarElongation returns the angular distance of an equatorial position
// from the sun at time mjd, using the approximate USNO solar ephemeris.
func SolarElongation(eq coord.Equa, mjd float64) unit.Angle {
	earthSun, _, _ := astro.Se2000(mjd)
	obj := EquaToCart(eq)
	d := earthSun.Dot(&obj) / math.Sqrt(earthSun.Square())
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return unit.Angle(math.Acos(d))
}
