// Package location abstracts the five kinds of place a Task or worker can
// occupy (spec.md §3/§4.2): a Cartesian point, a geodesic (lat/lon) point,
// a node in a plain graph, a node in a layered graph, and the degenerate
// Zero location used when position doesn't matter.
//
// Grounded on github.com/katalvlaran/lvlath/dijkstra's options/runner shape
// (adapted here into an A* pathing engine, see astar.go) and on the
// original Python source's mamoge/taskplanner/location package for exact
// per-variant distance semantics.
//
// Dynamic dispatch on Location is a closed Go interface whose concrete
// variants each implement DistanceTo, not a class hierarchy (spec.md §9
// design note).
package location

// Location is the tagged-union interface every concrete location variant
// implements. AsTuple exposes the location as an (x, y, z) triple for
// callers that need raw coordinates (e.g. visualization, out of scope
// here, or A*'s straight-line heuristic). DistanceTo computes the distance
// to another Location per the pairwise rules of spec.md §4.2; ok is false
// when no distance/path can be established (e.g. disconnected graph
// nodes).
type Location interface {
	AsTuple() Tuple
	DistanceTo(other Location) (distance float64, ok bool)
}

// Tuple is the (x, y, z) coordinate triple every Location exposes.
// HasZ reports whether Z carries a meaningful value (some variants are
// inherently 2D).
type Tuple struct {
	X, Y, Z float64
	HasZ    bool
}

// Distance is the free-function form of a.DistanceTo(b), for callers that
// prefer not to care which side is "self". It simply delegates to a, since
// every concrete variant's DistanceTo already special-cases Zero
// symmetrically (spec.md §4.2: "Zero → *: 0" applies regardless of order).
func Distance(a, b Location) (float64, bool) {
	return a.DistanceTo(b)
}

// isZero reports whether l is the Zero location, without requiring callers
// outside this package to type-assert against the unexported zero type.
func isZero(l Location) bool {
	_, ok := l.(Zero)

	return ok
}
