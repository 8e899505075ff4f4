// Public domain.

package astrom

import (
	"errors"
	"io"
	"os"

	"github.com/astrogo/fitsio"
)

// A DensityMap is a 2-D histogram of source positions, useful as a quick
// look at the spatial coverage of a catalog.
type DensityMap struct {
	Nx, Ny                 int
	Xmin, Xmax, Ymin, Ymax float64
	Counts                 []int32 // row-major, Nx*Ny
}

// NewDensityMap bins points into an nx by ny grid spanning their bounding
// box.  Points on the upper edges land in the last bin.
func NewDensityMap(points []Point, nx, ny int) (*DensityMap, error) {
	if nx < 1 || ny < 1 {
		return nil, errors.New("astrom: density map needs positive dimensions")
	}
	if len(points) == 0 {
		return nil, errors.New("astrom: no points to bin")
	}
	m := &DensityMap{
		Nx: nx, Ny: ny,
		Xmin: points[0].X, Xmax: points[0].X,
		Ymin: points[0].Y, Ymax: points[0].Y,
		Counts: make([]int32, nx*ny),
	}
	for _, p := range points[1:] {
		if p.X < m.Xmin {
			m.Xmin = p.X
		}
		if p.X > m.Xmax {
			m.Xmax = p.X
		}
		if p.Y < m.Ymin {
			m.Ymin = p.Y
		}
		if p.Y > m.Ymax {
			m.Ymax = p.Y
		}
	}
	dx := (m.Xmax - m.Xmin) / float64(nx)
	dy := (m.Ymax - m.Ymin) / float64(ny)
	for _, p := range points {
		ix, iy := 0, 0
		if dx > 0 {
			ix = int((p.X - m.Xmin) / dx)
		}
		if dy > 0 {
			iy = int((p.Y - m.Ymin) / dy)
		}
		if ix == nx {
			ix = nx - 1
		}
		if iy == ny {
			iy = ny - 1
		}
		m.Counts[iy*nx+ix]++
	}
	return m, nil
}

// At returns the count in bin (ix, iy).
func (m *DensityMap) At(ix, iy int) int32 {
	return m.Counts[iy*m.Nx+ix]
}

// WriteFITS streams the density map as a 32 bit FITS image.  Bin edges
// are recorded in header cards.
func (m *DensityMap) WriteFITS(w io.Writer) error {
	fits, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer fits.Close()
	im := fitsio.NewImage(32, []int{m.Nx, m.Ny})
	defer im.Close()
	cards := []fitsio.Card{
		{Name: "XMIN", Value: m.Xmin, Comment: "lower x bin edge"},
		{Name: "XMAX", Value: m.Xmax, Comment: "upper x bin edge"},
		{Name: "YMIN", Value: m.Ymin, Comment: "lower y bin edge"},
		{Name: "YMAX", Value: m.Ymax, Comment: "upper y bin edge"},
	}
	if err = im.Header().Append(cards...); err != nil {
		return err
	}
	if err = im.Write(m.Counts); err != nil {
		return err
	}
	return fits.Write(im)
}

// WriteFITSFile writes the density map to the named file.
func (m *DensityMap) WriteFITSFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteFITS(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
