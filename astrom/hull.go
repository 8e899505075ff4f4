// Public domain.

// Package astrom implements sky geometry helpers: convex hulls around
// source collections, ds9 region files, linear sky motion fits, solar
// elongation, and source density maps.
package astrom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// A Point is a position in a planar coordinate system, typically RA and
// Dec in degrees.
type Point struct {
	X, Y float64
}

// cross product of OA and OB; positive for a counter-clockwise turn.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull returns the convex hull of the points in counter-clockwise
// order by the monotone chain algorithm.  The input is not modified.
// Results with fewer than three points are returned as-is.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		return append([]Point{}, points...)
	}
	p := append([]Point{}, points...)
	sort.Slice(p, func(i, j int) bool {
		if p[i].X != p[j].X {
			return p[i].X < p[j].X
		}
		return p[i].Y < p[j].Y
	})
	var h []Point
	// lower hull
	for _, pt := range p {
		for len(h) >= 2 && cross(h[len(h)-2], h[len(h)-1], pt) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, pt)
	}
	// upper hull
	lower := len(h) + 1
	for i := len(p) - 2; i >= 0; i-- {
		pt := p[i]
		for len(h) >= lower && cross(h[len(h)-2], h[len(h)-1], pt) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, pt)
	}
	return h[:len(h)-1]
}

// HullPoints returns the convex hull as a closed polygon: the first
// vertex is repeated at the end.
func HullPoints(points []Point) []Point {
	h := ConvexHull(points)
	if len(h) == 0 {
		return h
	}
	return append(h, h[0])
}

// WriteDS9Region writes the convex hull around points as a ds9 region
// file polygon.  coordSys names the region coordinate system, usually
// "icrs".  Region file properties are described at
// http://ds9.si.edu/doc/ref/region.html#RegionProperties.
func WriteDS9Region(w io.Writer, points []Point, coordSys string) error {
	h := HullPoints(points)
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "global color=yellow dashlist=8 3 width=2 ")
	fmt.Fprint(bw, "select=1 highlite=1 dash=0 fixed=0 edit=1 move=1 delete=1 include=1 source=1\n")
	fmt.Fprintf(bw, "%s\n", coordSys)
	fmt.Fprint(bw, "polygon(")
	for _, p := range h {
		fmt.Fprintf(bw, "%v,%v,", p.X, p.Y)
	}
	fmt.Fprint(bw, ")\n")
	return bw.Flush()
}

// WriteDS9RegionFile writes the hull region to the named file.
func WriteDS9RegionFile(path string, points []Point, coordSys string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDS9Region(f, points, coordSys); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
