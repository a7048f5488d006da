// Package optimizer implements the Route Optimizer (spec.md §4.6): a
// multi-route, multi-dimension, capacity- and precedence-constrained
// vehicle-routing solver over a problem graph.
//
// No OR-Tools-equivalent combinatorial solver exists anywhere in this
// module's source corpus; the nearest relative is the teacher library's
// tsp package, a single-vehicle TSP/ATSP toolkit. This package generalizes
// tsp's architecture — Options-style configuration, a two-phase
// construct-then-improve solve, first-improvement local search scanning,
// deterministic results (no random seed is involved), a linearized dense
// cost matrix — into the
// multi-route, precedence-and-capacity-constrained shape spec.md §4.6
// describes, grounded in its exact semantics on the original source's
// mamoge/taskplanner/optimize/ortools package (dimension/capacity/
// pairwise-constraint/disjunction shape), with the max-constraint bug
// that binding carries corrected per spec.md §9.
package optimizer

import "github.com/VeBaS-UAV/mamoge-taskplanner/problemgraph"

// sentinelCost substitutes for a cost callback returning "no edge" or an
// error, keeping the cost matrix total (spec.md §4.6.3).
const sentinelCost int64 = 1_000_000_000

// defaultDropPenalty is the original source's 24*60*60-second per-node
// disjunction penalty. Nothing in this package reads it: a node that cannot
// be inserted into any route is returned in Solve's dropped list, and no
// penalty value is added to any dimension or returned.
const defaultDropPenalty int64 = 24 * 60 * 60

// CostCallback computes the transit cost from one problem-graph node to
// another. ok is false when no edge exists; the optimizer substitutes
// sentinelCost rather than aborting (spec.md §4.6.3).
type CostCallback func(g *problemgraph.Graph, from, to string) (cost int64, ok bool)

// DemandCallback computes a per-node demand against a dimension or
// capacity. ok is false on failure; the optimizer logs and substitutes
// sentinelCost as the demand rather than aborting (spec.md §7:
// CallbackError).
type DemandCallback func(g *problemgraph.Graph, node string) (demand int64, ok bool)

// dimension is a registered cumulative quantity tracked along a route.
type dimension struct {
	name         string
	cost         CostCallback
	demand       DemandCallback // optional, may be nil
	capacity     int64          // 0 means unconstrained
	hasCapacity  bool
	slack        int64
}

// capacityDim is a registered per-vehicle unary-demand capacity (spec.md
// §4.6.2: add_capacity).
type capacityDim struct {
	name     string
	demand   DemandCallback
	capacity int64
	slack    int64
}

// PairwiseConstraint binds two nodes to the same route and orders their
// cumulative values on a named dimension (spec.md §4.6.1).
//
// Either or both of Min/Max may be set; setting both bounds the gap from
// both sides. Max is interpreted as
// cumul_d(u) + Max >= cumul_d(v), the corrected semantics spec.md §9
// picks over the original source's (buggy) identical encoding of min and
// max.
type PairwiseConstraint struct {
	U, V      string
	Dimension string
	Min       *int64
	Max       *int64
}

// NodeMeta is one dimension's {cumul, demand, transit, slack} at one node
// of a route (spec.md §4.6.5).
type NodeMeta struct {
	Cumul, Demand, Transit, Slack int64
}

// RouteMeta is the per-dimension, per-node metadata for one returned
// route: RouteMeta[dimensionName][nodeID].
type RouteMeta map[string]map[string]NodeMeta
