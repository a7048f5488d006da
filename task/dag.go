package task

import (
	"sync"

	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
)

// DAG is a precedence graph of Tasks. Nodes are stored in a slice with an
// id-keyed index (the Arena-like indexed-storage style this module uses
// throughout, grounded on the teacher library's core.Graph adjacency
// maps), rather than tasks referencing each other by pointer, so the
// whole structure serializes cleanly and detects cycles cheaply.
type DAG struct {
	mu sync.RWMutex

	ID   string
	Name string

	nodes      []*Task
	index      map[string]int // task id -> node index
	successors [][]int        // successors[i] = node indices downstream of nodes[i]
}

// NewDAG returns an empty DAG named name; its ID equals name, matching
// the original source's DAG.__init__ (spec.md §4.3).
func NewDAG(name string) *DAG {
	return &DAG{
		ID:    name,
		Name:  name,
		index: make(map[string]int),
	}
}

// AddTask appends t to the DAG, rewriting t.ID to "<dag.ID>/<local_id>"
// (spec.md §4.3: add_task rewrites t.id ← dag.id + "/" + local_id).
// Re-adding a task whose rewritten id already exists is an error.
func (d *DAG) AddTask(t *Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rewritten := d.ID + "/" + t.LocalID
	if _, exists := d.index[rewritten]; exists {
		return errs.Wrapf(errs.ErrInvalidName, "task: duplicate id %q in dag %q", rewritten, d.ID)
	}
	t.ID = rewritten

	idx := len(d.nodes)
	d.nodes = append(d.nodes, t)
	d.successors = append(d.successors, nil)
	d.index[t.ID] = idx

	return nil
}

// SetDownstream adds a precedence edge up -> down. It rejects an edge that
// would create a cycle, returning errs.ErrCyclic.
func (d *DAG) SetDownstream(up, down *Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ui, ok := d.index[up.ID]
	if !ok {
		return errs.Wrapf(errs.ErrNotFound, "task: unknown task %q", up.ID)
	}
	di, ok := d.index[down.ID]
	if !ok {
		return errs.Wrapf(errs.ErrNotFound, "task: unknown task %q", down.ID)
	}

	if d.reaches(di, ui) {
		return errs.Wrapf(errs.ErrCyclic, "task: edge %s->%s would create a cycle", up.ID, down.ID)
	}

	d.successors[ui] = append(d.successors[ui], di)

	return nil
}

// reaches reports whether there is a path from -> to in the current
// adjacency, used to reject edges that would introduce a cycle. Caller
// must hold d.mu.
func (d *DAG) reaches(from, to int) bool {
	if from == to {
		return true
	}
	visited := make([]bool, len(d.nodes))
	stack := []int{from}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == to {
			return true
		}
		stack = append(stack, d.successors[u]...)
	}

	return false
}

// Tasks returns the map id -> Task across the whole DAG (spec.md §4.3).
func (d *DAG) Tasks() map[string]*Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]*Task, len(d.nodes))
	for id, idx := range d.index {
		out[id] = d.nodes[idx]
	}

	return out
}

// Nodes returns every task in the DAG in insertion order, the
// deterministic ordering the problem-graph builder and optimizer rely on.
func (d *DAG) Nodes() []*Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Task, len(d.nodes))
	copy(out, d.nodes)

	return out
}

// Downstream returns the direct successors of t (spec.md §4.3).
func (d *DAG) Downstream(t *Task) []*Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx, ok := d.index[t.ID]
	if !ok {
		return nil
	}
	out := make([]*Task, 0, len(d.successors[idx]))
	for _, si := range d.successors[idx] {
		out = append(out, d.nodes[si])
	}

	return out
}

// Roots returns the nodes with zero in-degree (spec.md §4.3).
func (d *DAG) Roots() []*Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	indeg := make([]int, len(d.nodes))
	for _, succs := range d.successors {
		for _, si := range succs {
			indeg[si]++
		}
	}
	var roots []*Task
	for i, n := range d.nodes {
		if indeg[i] == 0 {
			roots = append(roots, n)
		}
	}

	return roots
}

// Sinks returns the nodes with zero out-degree, used by the problem-graph
// builder (spec.md §4.5) to find join points.
func (d *DAG) Sinks() []*Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var sinks []*Task
	for i, n := range d.nodes {
		if len(d.successors[i]) == 0 {
			sinks = append(sinks, n)
		}
	}

	return sinks
}

// Edges returns every precedence edge as (upstream id, downstream id)
// pairs, in the order spec.md §4.3's serialization names.
func (d *DAG) Edges() [][2]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var edges [][2]string
	for i, succs := range d.successors {
		for _, si := range succs {
			edges = append(edges, [2]string{d.nodes[i].ID, d.nodes[si].ID})
		}
	}

	return edges
}

// ToDict renders the DAG as {name, nodes:[task_dict], edges:[(u_id,v_id)]}
// (spec.md §4.3).
func (d *DAG) ToDict() map[string]any {
	d.mu.RLock()
	nodeDicts := make([]any, len(d.nodes))
	for i, n := range d.nodes {
		nodeDicts[i] = n.ToDict()
	}
	d.mu.RUnlock()

	edges := d.Edges()
	edgeList := make([]any, len(edges))
	for i, e := range edges {
		edgeList[i] = []any{e[0], e[1]}
	}

	return map[string]any{"name": d.Name, "nodes": nodeDicts, "edges": edgeList}
}

// DAGFromDict reconstructs a DAG from its ToDict form; dict -> DAG -> dict
// is the identity (spec.md §4.3, §8 invariant 2).
//
// Node ids in the encoded dict are already dag-prefixed, so reconstruction
// restores each task's LocalID and re-adds it under the same id rather
// than re-rewriting it.
func DAGFromDict(d map[string]any) (*DAG, error) {
	name, _ := d["name"].(string)
	dag := NewDAG(name)

	nodesRaw, _ := d["nodes"].([]any)
	for _, raw := range nodesRaw {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		t, err := FromDict(m)
		if err != nil {
			return nil, err
		}
		if err := dag.addExisting(t); err != nil {
			return nil, err
		}
	}

	edgesRaw, _ := d["edges"].([]any)
	for _, raw := range edgesRaw {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		uID, _ := pair[0].(string)
		vID, _ := pair[1].(string)
		u, ok := dag.Tasks()[uID]
		if !ok {
			return nil, errs.Wrapf(errs.ErrNotFound, "task: edge references unknown id %q", uID)
		}
		v, ok := dag.Tasks()[vID]
		if !ok {
			return nil, errs.Wrapf(errs.ErrNotFound, "task: edge references unknown id %q", vID)
		}
		if err := dag.SetDownstream(u, v); err != nil {
			return nil, err
		}
	}

	return dag, nil
}

// addExisting adds a task whose ID is already fully dag-prefixed, without
// rewriting it (used by FromDict to restore exact round-trip identity).
func (d *DAG) addExisting(t *Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.index[t.ID]; exists {
		return errs.Wrapf(errs.ErrInvalidName, "task: duplicate id %q in dag %q", t.ID, d.ID)
	}
	idx := len(d.nodes)
	d.nodes = append(d.nodes, t)
	d.successors = append(d.successors, nil)
	d.index[t.ID] = idx

	return nil
}
