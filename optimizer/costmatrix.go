package optimizer

// buildCostMatrices memoizes every registered dimension's cost callback
// over every (from, to) node-index pair in the bound graph, once per
// Solve call, mirroring location.Arena's pathCache (map keyed by integer
// index pairs, populated once and read thereafter) rather than invoking
// callbacks live from construct/improve's O(n) and O(n²) scans (spec.md
// §4.6.3, §9: "memoization via closures lifted to an explicit cache
// struct... keyed by (from,to) integer indices per solve").
//
// Built fresh on every Solve call: a later Solve call may run over a
// different bound graph.
func (o *Optimizer) buildCostMatrices() {
	n := len(o.graph.Tasks)
	o.nodeIndex = make(map[string]int, n)
	for i, t := range o.graph.Tasks {
		o.nodeIndex[t.ID] = i
	}

	o.matrixN = n
	o.matrices = make([][]int64, len(o.dims))
	for di, d := range o.dims {
		m := make([]int64, n*n)
		for i, from := range o.graph.Tasks {
			for j, to := range o.graph.Tasks {
				if i == j {
					continue
				}
				m[i*n+j] = o.evalCost(d, from.ID, to.ID)
			}
		}
		o.matrices[di] = m
	}
}

// evalCost invokes d's cost callback directly, substituting sentinelCost
// when it reports no edge or a negative cost. A dimension with no cost
// callback has zero cost on every arc.
// Only buildCostMatrices calls this; every other reader goes through the
// memoized arcCost/dimCost.
func (o *Optimizer) evalCost(d *dimension, from, to string) int64 {
	if d.cost == nil {
		return 0
	}
	cost, ok := d.cost(o.graph, from, to)
	if !ok {
		o.logger.Warn("optimizer: cost callback reported no edge, using sentinel", "dimension", d.name, "from", from, "to", to)
		return sentinelCost
	}
	if cost < 0 {
		o.logger.Warn("optimizer: cost callback returned negative cost, using sentinel", "dimension", d.name, "from", from, "to", to)
		return sentinelCost
	}

	return cost
}

// arcCost returns the memoized dims[0] cost between from and to. Must
// only be called after buildCostMatrices (Solve does this before
// construct/improve run).
func (o *Optimizer) arcCost(from, to string) int64 {
	if len(o.matrices) == 0 {
		return 0
	}

	return o.lookup(0, from, to)
}

// dimCost returns d's memoized cost between from and to.
func (o *Optimizer) dimCost(d *dimension, from, to string) int64 {
	idx, ok := o.dimIndex[d.name]
	if !ok {
		return 0
	}

	return o.lookup(idx, from, to)
}

func (o *Optimizer) lookup(dimIdx int, from, to string) int64 {
	i, iok := o.nodeIndex[from]
	j, jok := o.nodeIndex[to]
	if !iok || !jok || i == j {
		return 0
	}

	return o.matrices[dimIdx][i*o.matrixN+j]
}
