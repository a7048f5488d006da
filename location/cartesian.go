package location

import "math"

// Norm computes a scalar distance from a displacement vector (dx, dy, dz).
// EuclideanNorm and ManhattanNorm are the two norms spec.md §4.2 names as
// permitted; a Cartesian defaults to EuclideanNorm.
type Norm func(dx, dy, dz float64) float64

// EuclideanNorm is the default Cartesian distance: sqrt(dx²+dy²+dz²).
func EuclideanNorm(dx, dy, dz float64) float64 {
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ManhattanNorm sums absolute component differences.
func ManhattanNorm(dx, dy, dz float64) float64 {
	return math.Abs(dx) + math.Abs(dy) + math.Abs(dz)
}

// Cartesian is a point in flat (x, y, optional z) space. Norm selects the
// distance function between two Cartesian points; a zero-valued Norm field
// falls back to EuclideanNorm.
type Cartesian struct {
	X, Y, Z float64
	HasZ    bool
	Norm    Norm
}

// NewCartesian2D returns a 2D Cartesian point using EuclideanNorm.
func NewCartesian2D(x, y float64) Cartesian {
	return Cartesian{X: x, Y: y}
}

// NewCartesian3D returns a 3D Cartesian point using EuclideanNorm.
func NewCartesian3D(x, y, z float64) Cartesian {
	return Cartesian{X: x, Y: y, Z: z, HasZ: true}
}

// AsTuple returns (x, y, z).
func (c Cartesian) AsTuple() Tuple {
	return Tuple{X: c.X, Y: c.Y, Z: c.Z, HasZ: c.HasZ}
}

// DistanceTo computes c's distance to other: 0 against Zero, the
// configured norm against another Cartesian, unsupported otherwise.
func (c Cartesian) DistanceTo(other Location) (float64, bool) {
	if isZero(other) {
		return 0, true
	}
	oc, ok := other.(Cartesian)
	if !ok {
		return 0, false
	}
	norm := c.Norm
	if norm == nil {
		norm = EuclideanNorm
	}

	return norm(c.X-oc.X, c.Y-oc.Y, c.Z-oc.Z), true
}
