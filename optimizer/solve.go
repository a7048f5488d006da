package optimizer

import (
	"context"
	"time"

	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
)

// Solve builds and improves numRoutes routes over the bound graph
// (spec.md §4.6.4). numRoutes <= 0 uses the configured default
// (planconfig.Config.DefaultNumRoutes). maxTime <= 0 uses the configured
// default solve budget; the improvement phase stops early once that
// budget (bounded by ctx's own deadline, if any) elapses.
//
// Returns one route per requested vehicle (as node-id sequences running
// start -> ... -> end), per-route per-dimension metadata, and the ids of
// any node that could not be feasibly placed on any route (dropped rather
// than causing a solve failure, in the spirit of the original source's
// AddDisjunction). No penalty value is computed for dropped nodes; the
// penalty dimension's name only appears in the warning logged for them.
func (o *Optimizer) Solve(ctx context.Context, numRoutes int, maxTime time.Duration, constraints []PairwiseConstraint) ([][]string, []RouteMeta, []string, error) {
	if o.graph == nil {
		return nil, nil, nil, errs.Wrapf(errs.ErrInfeasible, "optimizer: no graph bound")
	}
	if len(o.dims) == 0 {
		return nil, nil, nil, errs.Wrapf(errs.ErrInfeasible, "optimizer: no dimension registered")
	}
	if numRoutes <= 0 {
		numRoutes = o.cfg.DefaultNumRoutes
	}
	if numRoutes <= 0 {
		numRoutes = 1
	}
	if maxTime <= 0 {
		maxTime = o.cfg.DefaultSolveBudget
	}

	solveCtx := ctx
	var cancel context.CancelFunc
	if maxTime > 0 {
		solveCtx, cancel = context.WithTimeout(ctx, maxTime)
		defer cancel()
	}

	o.buildCostMatrices()

	routes, dropped := o.construct(numRoutes, constraints)
	if len(dropped) > 0 {
		o.logger.Warn("optimizer: nodes dropped at construction, charged to penalty dimension", "count", len(dropped), "dimension", o.penaltyNameOrDefault())
	}

	routes = o.improve(solveCtx, routes)

	metas := o.extract(routes, constraints)

	return routes, metas, dropped, nil
}

func (o *Optimizer) penaltyNameOrDefault() string {
	if d := o.penaltyDimension(); d != nil {
		return d.name
	}

	return o.cfg.PenaltyDimensionName
}
