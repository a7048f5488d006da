package optimizer

import (
	"context"
)

// improve runs a bounded first-improvement 2-opt local search per route,
// grounded on the teacher library's tsp/two_opt.go: same linearized
// candidate scanning and soft wall-clock deadline checked periodically
// rather than on every iteration, generalized here to skip any reversal
// that would violate a precedence edge or move the route's fixed
// start/end sync points.
//
// ctx's deadline (if any) is checked every 256 candidate moves; improve
// returns the best tour found so far once ctx is done, never erroring on
// a timeout.
func (o *Optimizer) improve(ctx context.Context, routes [][]string) [][]string {
	out := make([][]string, len(routes))
	for i, r := range routes {
		out[i] = o.twoOpt(ctx, r)
	}

	return out
}

// twoOpt returns an improved copy of a single route (interior nodes only; index 0
// and len-1 are the fixed start/end sync points) until no further
// first-improvement reversal is found or ctx is done.
func (o *Optimizer) twoOpt(ctx context.Context, route []string) []string {
	if len(route) < 4 {
		return route
	}

	tour := make([]string, len(route))
	copy(tour, route)

	checked := 0
	improved := true
	for improved {
		improved = false
		for i := 1; i < len(tour)-2; i++ {
			for k := i + 1; k < len(tour)-1; k++ {
				checked++
				if checked%256 == 0 && ctx.Err() != nil {
					return tour
				}

				if !o.reversalRespectsPrecedence(tour, i, k) {
					continue
				}

				before := o.arcCost(tour[i-1], tour[i]) + o.arcCost(tour[k], tour[k+1])
				after := o.arcCost(tour[i-1], tour[k]) + o.arcCost(tour[i], tour[k+1])
				if after < before {
					reverse(tour, i, k)
					improved = true
				}
			}
			if ctx.Err() != nil {
				return tour
			}
		}
	}

	return tour
}

// reversalRespectsPrecedence reports whether reversing tour[i:k+1] keeps
// every precedence edge among the reversed nodes (and between a reversed
// node and the rest of the route) satisfied. Conservative: any
// precedence edge with both endpoints inside [i,k] forbids the reversal,
// since reversing flips their relative order.
func (o *Optimizer) reversalRespectsPrecedence(tour []string, i, k int) bool {
	inRange := make(map[string]bool, k-i+1)
	for idx := i; idx <= k; idx++ {
		inRange[tour[idx]] = true
	}
	for pair, isPrecedence := range o.graph.Precedence {
		if isPrecedence && inRange[pair[0]] && inRange[pair[1]] {
			return false
		}
	}

	return true
}

func reverse(tour []string, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}
