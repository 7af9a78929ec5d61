package geom

import "math"

// Polyline is the solution path representation: an ordered sequence of
// waypoints joined by straight segments. Its Length is the scalar cost
// compared across improvement slices.
type Polyline struct {
	pts []Point
}

// NewPolyline builds a path through the given waypoints.
func NewPolyline(pts ...Point) *Polyline {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return &Polyline{pts: cp}
}

// Length returns the summed Euclidean length of all segments.
// A path with fewer than two waypoints has length zero.
func (p *Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.pts); i++ {
		a, b := p.pts[i-1], p.pts[i]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// Points returns a copy of the waypoint sequence.
func (p *Polyline) Points() []Point {
	cp := make([]Point, len(p.pts))
	copy(cp, p.pts)
	return cp
}
