package optimizer

import (
	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
	"github.com/VeBaS-UAV/mamoge-taskplanner/planconfig"
	"github.com/VeBaS-UAV/mamoge-taskplanner/planlog"
	"github.com/VeBaS-UAV/mamoge-taskplanner/problemgraph"
)

// Optimizer builds and solves a multi-route plan over a problem graph
// (spec.md §4.6). Configure it with SetGraph, AddDimension and
// AddCapacity, then call Solve.
type Optimizer struct {
	cfg    planconfig.Config
	logger planlog.Logger

	graph *problemgraph.Graph

	dims       []*dimension // dims[0] is the arc-cost dimension
	dimIndex   map[string]int
	capacities []*capacityDim

	// nodeIndex/matrices/matrixN are the per-solve cost-matrix cache
	// built by buildCostMatrices; see costmatrix.go.
	nodeIndex map[string]int
	matrices  [][]int64
	matrixN   int
}

// New returns an Optimizer configured with cfg; a nil logger defaults to
// planlog.Default().
func New(cfg planconfig.Config, logger planlog.Logger) *Optimizer {
	if logger == nil {
		logger = planlog.Default()
	}

	return &Optimizer{
		cfg:      cfg,
		logger:   logger,
		dimIndex: make(map[string]int),
	}
}

// NewFromEnv returns an Optimizer configured from planconfig.NewFromEnv:
// defaults overlaid by any FLEETPLAN_* environment/`.env` tunables at
// envPath (or the process's default .env search when envPath is empty).
// logger may be nil, in which case planlog.Default is used.
func NewFromEnv(envPath string, logger planlog.Logger) *Optimizer {
	return New(planconfig.NewFromEnv(envPath), logger)
}

// SetGraph binds the problem graph Solve will route over.
func (o *Optimizer) SetGraph(g *problemgraph.Graph) {
	o.graph = g
}

// AddDimension registers a cumulative quantity tracked along every route,
// with its own transit-cost callback (spec.md §4.6.2). The first
// dimension registered on an Optimizer is the one whose cost callback
// also prices arcs for route construction and improvement, matching the
// original source's has_arc_def-gated single arc-cost dimension.
//
// demand may be nil when the dimension has no per-node demand (pure
// transit accumulation, e.g. elapsed time). capacity <= 0 means
// unconstrained; slack is added to capacity as a tolerance when
// construction checks the route's summed demand on this dimension. It does
// not add waiting time to the dimension's transit.
func (o *Optimizer) AddDimension(name string, cost CostCallback, demand DemandCallback, capacity, slack int64) error {
	if name == "" {
		return errs.Wrapf(errs.ErrInvalidName, "optimizer: dimension name must not be empty")
	}
	if _, exists := o.dimIndex[name]; exists {
		return errs.Wrapf(errs.ErrInvalidName, "optimizer: duplicate dimension %q", name)
	}

	d := &dimension{
		name:        name,
		cost:        cost,
		demand:      demand,
		capacity:    capacity,
		hasCapacity: capacity > 0,
		slack:       slack,
	}
	o.dimIndex[name] = len(o.dims)
	o.dims = append(o.dims, d)

	return nil
}

// AddCapacity registers a per-vehicle capacity bound on a named demand,
// independent of the cost dimensions (spec.md §4.6.2: add_capacity).
func (o *Optimizer) AddCapacity(name string, demand DemandCallback, capacity, slack int64) error {
	if name == "" {
		return errs.Wrapf(errs.ErrInvalidName, "optimizer: capacity name must not be empty")
	}
	for _, c := range o.capacities {
		if c.name == name {
			return errs.Wrapf(errs.ErrInvalidName, "optimizer: duplicate capacity %q", name)
		}
	}

	o.capacities = append(o.capacities, &capacityDim{
		name:     name,
		demand:   demand,
		capacity: capacity,
		slack:    slack,
	})

	return nil
}

// penaltyDimension returns the registered dimension used for drop
// penalties, falling back to the first registered dimension when the
// configured name isn't registered.
func (o *Optimizer) penaltyDimension() *dimension {
	name := o.cfg.PenaltyDimensionName
	if idx, ok := o.dimIndex[name]; ok {
		return o.dims[idx]
	}
	if len(o.dims) > 0 {
		return o.dims[0]
	}

	return nil
}

// demandOf evaluates d's demand callback at node, logging and substituting
// sentinelCost on failure rather than aborting (spec.md §7). A nil
// callback means zero demand.
func (o *Optimizer) demandOf(cb DemandCallback, dimName, node string) int64 {
	if cb == nil {
		return 0
	}
	v, ok := cb(o.graph, node)
	if !ok {
		o.logger.Warn("optimizer: demand callback failed, using sentinel", "dimension", dimName, "node", node)
		return sentinelCost
	}

	return v
}
