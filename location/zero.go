package location

// Zero is the degenerate location used by TaskSyncPoints and any Task whose
// position doesn't matter to the planner. Distance to or from a Zero is
// always 0 (spec.md §4.2).
type Zero struct{}

// AsTuple returns the origin; Zero carries no meaningful Z.
func (Zero) AsTuple() Tuple { return Tuple{} }

// DistanceTo always returns 0, regardless of other.
func (Zero) DistanceTo(Location) (float64, bool) { return 0, true }
