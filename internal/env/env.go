// Package env loads the fixed planar test environment: an ordered set of
// circular obstacles and a battery of start/goal queries. The environment is
// loaded once per run and shared read-only by every trial.
//
// Both sources are plain text, one numeric record per line. Obstacle records
// are "x y radius", query records are "startX startY goalX goalY". Blank
// lines and lines starting with '#' are skipped.
package env

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Circle is one circular obstacle.
type Circle struct {
	X      float64
	Y      float64
	Radius float64
}

// Query is one start/goal pair.
type Query struct {
	StartX float64
	StartY float64
	GoalX  float64
	GoalY  float64
}

// Environment is the immutable obstacle set plus query battery.
// All accessors return copies; nothing mutates an Environment after Load.
type Environment struct {
	circles []Circle
	queries []Query

	minX, minY float64
	maxX, maxY float64
	minRadius  float64
}

// ResourceError reports a missing or malformed fixture source.
// It is fatal to the whole suite: no partial run is meaningful without
// a well-formed environment.
type ResourceError struct {
	Path   string
	Line   int // 1-based; 0 when the whole file is unusable
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("resource %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("resource %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("resource %s: %s", e.Path, e.Reason)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsResourceError reports whether err is (or wraps) a ResourceError.
// Uses errors.As to handle wrapped errors.
func IsResourceError(err error) bool {
	var re *ResourceError
	return errors.As(err, &re)
}

// Load reads the obstacle and query sources and builds the environment.
// Either source being missing or malformed (wrong field count, non-numeric
// field, non-positive radius) fails with a *ResourceError.
func Load(obstaclePath, queryPath string) (*Environment, error) {
	obstacleRecords, err := loadRecords(obstaclePath, 3)
	if err != nil {
		return nil, err
	}
	queryRecords, err := loadRecords(queryPath, 4)
	if err != nil {
		return nil, err
	}

	e := &Environment{
		minX:      math.Inf(1),
		minY:      math.Inf(1),
		maxX:      math.Inf(-1),
		maxY:      math.Inf(-1),
		minRadius: math.Inf(1),
	}

	for _, rec := range obstacleRecords {
		c := Circle{X: rec.fields[0], Y: rec.fields[1], Radius: rec.fields[2]}
		if c.Radius <= 0 {
			return nil, &ResourceError{
				Path:   obstaclePath,
				Line:   rec.line,
				Reason: fmt.Sprintf("obstacle radius must be positive, got %g", c.Radius),
			}
		}
		e.circles = append(e.circles, c)
		e.minX = math.Min(e.minX, c.X-c.Radius)
		e.minY = math.Min(e.minY, c.Y-c.Radius)
		e.maxX = math.Max(e.maxX, c.X+c.Radius)
		e.maxY = math.Max(e.maxY, c.Y+c.Radius)
		e.minRadius = math.Min(e.minRadius, c.Radius)
	}

	for _, rec := range queryRecords {
		e.queries = append(e.queries, Query{
			StartX: rec.fields[0],
			StartY: rec.fields[1],
			GoalX:  rec.fields[2],
			GoalY:  rec.fields[3],
		})
	}

	return e, nil
}

// ObstacleCount returns the number of circular obstacles.
func (e *Environment) ObstacleCount() int { return len(e.circles) }

// Obstacle returns the i-th obstacle.
func (e *Environment) Obstacle(i int) Circle { return e.circles[i] }

// QueryCount returns the number of start/goal queries.
func (e *Environment) QueryCount() int { return len(e.queries) }

// Query returns the i-th query. Order is significant only for reproducible
// iteration.
func (e *Environment) Query(i int) Query { return e.queries[i] }

// Extent returns the bounding box of the obstacle set.
// With no obstacles the box is inverted (min > max).
func (e *Environment) Extent() (minX, minY, maxX, maxY float64) {
	return e.minX, e.minY, e.maxX, e.maxY
}

// MinRadius returns the smallest obstacle radius, or +Inf with no obstacles.
// Used to derive numeric tolerances from the fixture's cost scale.
func (e *Environment) MinRadius() float64 { return e.minRadius }

// record is one parsed fixture line.
type record struct {
	line   int
	fields []float64
}

// loadRecords parses a fixture file into fixed-width numeric records.
func loadRecords(path string, want int) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Reason: "cannot open", Err: err}
	}
	defer f.Close()

	var records []record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		raw := strings.Fields(text)
		if len(raw) != want {
			return nil, &ResourceError{
				Path:   path,
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d fields, got %d", want, len(raw)),
			}
		}

		fields := make([]float64, want)
		for i, s := range raw {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &ResourceError{
					Path:   path,
					Line:   lineNo,
					Reason: fmt.Sprintf("field %d is not numeric: %q", i+1, s),
				}
			}
			fields[i] = v
		}
		records = append(records, record{line: lineNo, fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ResourceError{Path: path, Reason: "read failed", Err: err}
	}

	return records, nil
}
