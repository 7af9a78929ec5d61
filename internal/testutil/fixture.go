package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/planconf/internal/env"
)

// DefaultObstacles is a small well-formed obstacle fixture shared by
// package tests. Smallest radius 4.
const DefaultObstacles = `# circle obstacles: x y radius
25 25 5
50 50 8
75 30 6
30 70 4
70 70 5
`

// DefaultQueries is the matching query battery (6 queries).
const DefaultQueries = `# queries: startX startY goalX goalY
10 10 90 90
10 90 90 10
15 50 85 50
50 10 50 90
10 50 90 55
20 20 80 85
`

// WriteFixtureFile writes content into dir/name and returns the path.
func WriteFixtureFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// LoadEnvironment writes the two sources to a temp dir and loads them.
func LoadEnvironment(t *testing.T, obstacles, queries string) *env.Environment {
	t.Helper()
	dir := t.TempDir()
	obstaclePath := WriteFixtureFile(t, dir, "obstacles.txt", obstacles)
	queryPath := WriteFixtureFile(t, dir, "queries.txt", queries)
	e, err := env.Load(obstaclePath, queryPath)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return e
}
