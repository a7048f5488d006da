package optimizer

import (
	"sort"

	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
)

// construct builds numRoutes initial routes over the bound graph via
// cheapest-feasible-insertion, grounded on the same construct-then-improve
// shape as the teacher library's tsp package (tsp.go's NearestNeighbor seed
// feeding TwoOpt), generalized here to: (a) multiple routes, (b) capacity
// bounds per capacity dimension, (c) precedence edges, which an insertion
// position must not violate, and (d) pairwise constraints, which force two
// nodes onto the same route before insertion begins.
//
// Nodes that cannot be feasibly inserted into any route are dropped and
// returned in dropped, in the spirit of the original source's
// AddDisjunction(node, 24*60*60); no penalty value is computed for them.
func (o *Optimizer) construct(numRoutes int, constraints []PairwiseConstraint) (routes [][]string, dropped []string) {
	routable := make([]*task.Task, 0, len(o.graph.Tasks))
	for _, t := range o.graph.Tasks {
		if t.ID == o.graph.Start || t.ID == o.graph.End {
			continue
		}
		routable = append(routable, t)
	}
	order := groupByConstraint(routable, constraints)

	routes = make([][]string, numRoutes)
	for i := range routes {
		routes[i] = []string{o.graph.Start, o.graph.End}
	}
	routeDemand := make([]map[string]int64, numRoutes)
	for i := range routeDemand {
		routeDemand[i] = make(map[string]int64)
	}

	for _, group := range order {
		placed := false
		// A constraint group is inserted whole onto one route. Routes are
		// tried in ascending order of their current summed demand (ties
		// keep route order); the first route that accepts the whole group
		// is used.
		candidateRoutes := make([]int, numRoutes)
		for i := range candidateRoutes {
			candidateRoutes[i] = i
		}
		sort.SliceStable(candidateRoutes, func(i, j int) bool {
			return routeLoad(routeDemand[candidateRoutes[i]]) < routeLoad(routeDemand[candidateRoutes[j]])
		})

		for _, ri := range candidateRoutes {
			if o.tryInsertGroup(routes, ri, group, routeDemand[ri]) {
				placed = true
				break
			}
		}
		if !placed {
			dropped = append(dropped, group...)
		}
	}

	return routes, dropped
}

// tryInsertGroup attempts to insert every node in group into route ri, in
// group order, each at its cheapest feasible position. All insertions
// within the call must succeed or none are kept.
func (o *Optimizer) tryInsertGroup(routes [][]string, ri int, group []string, demand map[string]int64) bool {
	trial := make([]string, len(routes[ri]))
	copy(trial, routes[ri])
	trialDemand := make(map[string]int64, len(demand))
	for k, v := range demand {
		trialDemand[k] = v
	}

	for _, node := range group {
		pos, ok := o.cheapestFeasiblePosition(trial, node)
		if !ok {
			return false
		}
		if !o.fitsCapacity(trial, trialDemand, node, pos) {
			return false
		}
		trial = insertAt(trial, pos, node)
		o.addDemand(trialDemand, node)
	}

	routes[ri] = trial
	for k, v := range trialDemand {
		demand[k] = v
	}

	return true
}

// cheapestFeasiblePosition finds the insertion index (between route[i-1]
// and route[i]) minimizing arc-cost delta, skipping any position that
// would place node before a precedence predecessor still later in the
// route, or after a precedence successor still earlier.
func (o *Optimizer) cheapestFeasiblePosition(route []string, node string) (int, bool) {
	bestPos := -1
	var bestDelta int64

	for i := 1; i < len(route); i++ {
		if !o.positionRespectsPrecedence(route, i, node) {
			continue
		}
		prev, next := route[i-1], route[i]
		delta := o.arcCost(prev, node) + o.arcCost(node, next) - o.arcCost(prev, next)
		if bestPos == -1 || delta < bestDelta {
			bestPos = i
			bestDelta = delta
		}
	}

	return bestPos, bestPos != -1
}

// positionRespectsPrecedence reports whether inserting node at index pos
// (before route[pos]) keeps every precedence edge touching node
// satisfied given the nodes already present in route.
func (o *Optimizer) positionRespectsPrecedence(route []string, pos int, node string) bool {
	indexOf := make(map[string]int, len(route))
	for i, id := range route {
		indexOf[id] = i
	}

	for pair, isPrecedence := range o.graph.Precedence {
		if !isPrecedence {
			continue
		}
		from, to := pair[0], pair[1]
		switch node {
		case from:
			if toIdx, ok := indexOf[to]; ok && toIdx < pos {
				return false
			}
		case to:
			if fromIdx, ok := indexOf[from]; ok && fromIdx >= pos {
				return false
			}
		}
	}

	return true
}

// dimDemandKey namespaces a dimension's own capacity accumulator inside
// the same per-route demand map used for AddCapacity entries, since a
// dimension registered with a capacity (the original source's
// AddDimensionWithVehicleCapacity shape) is bounded the same way.
func dimDemandKey(name string) string { return "dim:" + name }

// fitsCapacity reports whether adding node's demand on every registered
// capacity (both standalone AddCapacity entries and any dimension
// registered with its own capacity) keeps the route within capacity +
// slack.
func (o *Optimizer) fitsCapacity(route []string, demand map[string]int64, node string, _ int) bool {
	for _, c := range o.capacities {
		if c.capacity <= 0 {
			continue
		}
		projected := demand[c.name] + o.demandOf(c.demand, c.name, node)
		if projected > c.capacity+c.slack {
			return false
		}
	}
	for _, d := range o.dims {
		if !d.hasCapacity {
			continue
		}
		key := dimDemandKey(d.name)
		projected := demand[key] + o.demandOf(d.demand, d.name, node)
		if projected > d.capacity+d.slack {
			return false
		}
	}

	return true
}

func (o *Optimizer) addDemand(demand map[string]int64, node string) {
	for _, c := range o.capacities {
		demand[c.name] += o.demandOf(c.demand, c.name, node)
	}
	for _, d := range o.dims {
		if d.hasCapacity {
			demand[dimDemandKey(d.name)] += o.demandOf(d.demand, d.name, node)
		}
	}
}

func insertAt(route []string, pos int, node string) []string {
	out := make([]string, 0, len(route)+1)
	out = append(out, route[:pos]...)
	out = append(out, node)
	out = append(out, route[pos:]...)

	return out
}

func routeLoad(demand map[string]int64) int64 {
	var total int64
	for _, v := range demand {
		total += v
	}

	return total
}

// groupByConstraint partitions every routable node (excluding the graph's
// start/end sync points) into union-find groups, merging U and V whenever
// a pairwise constraint names them, so constrained pairs are always
// inserted onto the same route together.
func groupByConstraint(nodes []*task.Task, constraints []PairwiseConstraint) [][]string {
	parent := make(map[string]string, len(nodes))
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parent[n.ID] = n.ID
		ids = append(ids, n.ID)
	}
	for _, c := range constraints {
		if _, ok := parent[c.U]; !ok {
			continue
		}
		if _, ok := parent[c.V]; !ok {
			continue
		}
		union(c.U, c.V)
	}

	groups := make(map[string][]string)
	for _, id := range ids {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}
