// Package geom provides the geometry/collision abstraction consumed by the
// harness: a state space over the circle-obstacle environment, a validity
// predicate, and the polyline path representation whose length is the cost
// metric of a solution.
package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/planconf/internal/env"
)

// Point is a planar state.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Point
	Max Point
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// SpaceInformation is the consumed geometry/collision contract. The harness
// core only ever talks to this interface; concrete planners receive it
// through their session.
type SpaceInformation interface {
	// Bounds returns the domain of the space.
	Bounds() Rect

	// Valid reports whether the state is collision free.
	Valid(p Point) bool

	// ValidSegment reports whether the straight motion from a to b stays
	// collision free.
	ValidSegment(a, b Point) bool

	// Distance returns the metric distance between two states.
	Distance(a, b Point) float64
}

// ConfigurationError reports that a space or session cannot be constructed,
// e.g. a degenerate domain. Fatal to the suite.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// circleSpace is the reference SpaceInformation over a circle-obstacle
// environment: Euclidean metric, states invalid inside any obstacle.
type circleSpace struct {
	bounds     Rect
	circles    []env.Circle
	resolution float64 // motion check step
}

// BuildSpaceInformation constructs the state space and collision predicate
// for the given environment. Fails with a *ConfigurationError when the
// obstacle set spans a degenerate (zero-area) domain.
func BuildSpaceInformation(e *env.Environment) (SpaceInformation, error) {
	minX, minY, maxX, maxY := e.Extent()
	if !(maxX > minX) || !(maxY > minY) {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("degenerate planning domain [%g,%g]x[%g,%g]", minX, maxX, minY, maxY),
		}
	}

	s := &circleSpace{
		bounds: Rect{Min: Point{X: minX, Y: minY}, Max: Point{X: maxX, Y: maxY}},
	}
	for i := 0; i < e.ObstacleCount(); i++ {
		s.circles = append(s.circles, e.Obstacle(i))
	}
	// Motion checks step at half the smallest radius so no obstacle can be
	// jumped over.
	s.resolution = e.MinRadius() / 2

	return s, nil
}

func (s *circleSpace) Bounds() Rect { return s.bounds }

func (s *circleSpace) Valid(p Point) bool {
	for _, c := range s.circles {
		dx := p.X - c.X
		dy := p.Y - c.Y
		if dx*dx+dy*dy < c.Radius*c.Radius {
			return false
		}
	}
	return true
}

func (s *circleSpace) ValidSegment(a, b Point) bool {
	d := s.Distance(a, b)
	if d == 0 {
		return s.Valid(a)
	}
	steps := int(math.Ceil(d / s.resolution))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
		if !s.Valid(p) {
			return false
		}
	}
	return true
}

func (s *circleSpace) Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
