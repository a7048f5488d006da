package optimizer

// extract computes, for every dimension and every route, the per-node
// {cumul, transit, demand, slack} tuple spec.md §4.6.5 requires, then
// applies pairwise constraints by pushing cumulative values forward
// (consuming slack) to satisfy a violated Min bound, and logging (not
// failing) a violated Max bound, since repair would require re-routing a
// heuristic solution rather than a simple forward push.
func (o *Optimizer) extract(routes [][]string, constraints []PairwiseConstraint) []RouteMeta {
	metas := make([]RouteMeta, len(routes))
	for ri, route := range routes {
		meta := make(RouteMeta, len(o.dims))
		for _, d := range o.dims {
			meta[d.name] = o.extractDimension(route, d)
		}
		metas[ri] = meta
	}

	for _, c := range constraints {
		o.applyConstraint(routes, metas, c)
	}

	return metas
}

// extractDimension forward-propagates dimension d's cumulative value
// along route, starting at zero at the route's first (start sync point)
// node.
func (o *Optimizer) extractDimension(route []string, d *dimension) map[string]NodeMeta {
	nodeMeta := make(map[string]NodeMeta, len(route))
	if len(route) == 0 {
		return nodeMeta
	}

	var cumul int64
	demand := o.demandOf(d.demand, d.name, route[0])
	cumul += demand
	nodeMeta[route[0]] = NodeMeta{Cumul: cumul, Demand: demand, Transit: 0, Slack: 0}

	for i := 1; i < len(route); i++ {
		transit := o.dimCost(d, route[i-1], route[i])
		demand := o.demandOf(d.demand, d.name, route[i])
		cumul += transit + demand
		nodeMeta[route[i]] = NodeMeta{Cumul: cumul, Demand: demand, Transit: transit, Slack: 0}
	}

	return nodeMeta
}

// applyConstraint enforces a single pairwise constraint across whichever
// route holds both U and V (construction guarantees they share one, via
// groupByConstraint).
func (o *Optimizer) applyConstraint(routes [][]string, metas []RouteMeta, c PairwiseConstraint) {
	dimIdx, ok := o.dimIndex[c.Dimension]
	if !ok {
		return
	}
	dimName := o.dims[dimIdx].name

	for ri, route := range routes {
		byID := metas[ri][dimName]
		uMeta, uOK := byID[c.U]
		vMeta, vOK := byID[c.V]
		if !uOK || !vOK {
			continue
		}

		if c.Min != nil {
			required := uMeta.Cumul + *c.Min
			if vMeta.Cumul < required {
				delta := required - vMeta.Cumul
				pushForward(route, byID, c.V, delta)
			}
		}
		if c.Max != nil {
			// spec.md §9's corrected semantics: cumul(u) + max >= cumul(v).
			// A violation here means the heuristic route already runs too
			// long between u and v; log it rather than rewriting the
			// route, since repairing it is a construction-time concern.
			required := uMeta.Cumul + *c.Max
			if byID[c.V].Cumul > required {
				o.logger.Warn("optimizer: pairwise max constraint violated", "u", c.U, "v", c.V, "dimension", dimName)
			}
		}
	}
}

// pushForward adds delta to fromID's cumulative value and every node
// after it on route, recording the pushed amount as slack on fromID.
func pushForward(route []string, byID map[string]NodeMeta, fromID string, delta int64) {
	pushing := false
	for _, id := range route {
		if id == fromID {
			pushing = true
			m := byID[id]
			m.Cumul += delta
			m.Slack += delta
			byID[id] = m
			continue
		}
		if pushing {
			m := byID[id]
			m.Cumul += delta
			byID[id] = m
		}
	}
}
