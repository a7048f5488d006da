// Package problemgraph augments a precedence DAG into the dense directed
// graph the route optimizer solves over (spec.md §4.5): every original
// node and edge, plus an edge (u, v) for every v not in u's ancestor or
// descendant set, with synthetic source/sink sync points inserted when
// the DAG has more than one root or sink.
//
// Grounded on the original source's
// mamoge/taskplanner/nx/__init__.py:G_problem_from_dag (which copies the
// DAG, then for each node adds an edge to every node outside its ancestor/
// descendant set), generalized here to insert synthetic join points when
// G_first/G_last's "exactly one root/sink" assumption doesn't hold.
package problemgraph

import (
	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
	"github.com/google/uuid"
)

// Graph is the dense directed graph G' derived from a DAG: its full node
// set (including any synthetic sync points), every edge with a flag for
// whether it is an original precedence edge, and the unique start/end
// node ids the optimizer must route between.
type Graph struct {
	Tasks      []*task.Task
	Edges      []Edge
	Precedence map[[2]string]bool
	Start      string
	End        string
}

// Edge is one edge of G', tagged with whether it is an original
// precedence edge (weight-free in both cases; C6's callbacks compute
// weight on demand).
type Edge struct {
	From, To   string
	Precedence bool
}

// Build augments dag into its problem graph. Synthetic source/sink ids
// are minted with google/uuid so they cannot collide with real task ids.
func Build(dag *task.DAG) (*Graph, error) {
	nodes := dag.Nodes()
	if len(nodes) == 0 {
		return nil, errs.Wrapf(errs.ErrInvalidName, "problemgraph: empty dag %q", dag.Name)
	}

	byID := make(map[string]*task.Task, len(nodes))
	for _, t := range nodes {
		byID[t.ID] = t
	}

	successors := make(map[string][]string)
	for _, e := range dag.Edges() {
		successors[e[0]] = append(successors[e[0]], e[1])
	}

	roots := dag.Roots()
	sinks := dag.Sinks()

	var start, end string

	if len(roots) == 1 {
		start = roots[0].ID
	} else {
		source := task.NewSyncPoint("sync-source-"+uuid.NewString(), "synthetic source")
		nodes = append(nodes, source)
		byID[source.ID] = source
		for _, r := range roots {
			successors[source.ID] = append(successors[source.ID], r.ID)
		}
		start = source.ID
	}

	if len(sinks) == 1 {
		end = sinks[0].ID
	} else {
		sink := task.NewSyncPoint("sync-sink-"+uuid.NewString(), "synthetic sink")
		nodes = append(nodes, sink)
		byID[sink.ID] = sink
		for _, s := range sinks {
			successors[s.ID] = append(successors[s.ID], sink.ID)
		}
		end = sink.ID
	}

	precedence := make(map[[2]string]bool)
	for from, tos := range successors {
		for _, to := range tos {
			precedence[[2]string{from, to}] = true
		}
	}

	ancestors, descendants := ancestorDescendantSets(nodes, successors)

	var edges []Edge
	// Emit precedence edges first, in a deterministic (from,to) node order.
	for _, u := range nodes {
		for _, v := range successors[u.ID] {
			edges = append(edges, Edge{From: u.ID, To: v, Precedence: true})
		}
	}

	// Emit the dense non-precedence edges: for each ordered pair (u, v)
	// with v outside ancestors(u) ∪ descendants(u) ∪ {u}, add (u, v)
	// (spec.md §4.5 invariant 3: |E'| = |E| + Σᵤ(|V|-|ancestors(u)|-|descendants(u)|-1)).
	for _, u := range nodes {
		anc := ancestors[u.ID]
		desc := descendants[u.ID]
		for _, v := range nodes {
			if v.ID == u.ID || anc[v.ID] || desc[v.ID] {
				continue
			}
			edges = append(edges, Edge{From: u.ID, To: v.ID, Precedence: false})
		}
	}

	return &Graph{Tasks: nodes, Edges: edges, Precedence: precedence, Start: start, End: end}, nil
}

// ancestorDescendantSets computes, for every node id, the set of ids
// reachable backward (ancestors) and forward (descendants) through
// successors.
func ancestorDescendantSets(nodes []*task.Task, successors map[string][]string) (map[string]map[string]bool, map[string]map[string]bool) {
	predecessors := make(map[string][]string)
	for from, tos := range successors {
		for _, to := range tos {
			predecessors[to] = append(predecessors[to], from)
		}
	}

	ancestors := make(map[string]map[string]bool, len(nodes))
	descendants := make(map[string]map[string]bool, len(nodes))
	for _, n := range nodes {
		ancestors[n.ID] = reachable(n.ID, predecessors)
		descendants[n.ID] = reachable(n.ID, successors)
	}

	return ancestors, descendants
}

func reachable(start string, adj map[string][]string) map[string]bool {
	seen := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}

	return seen
}
