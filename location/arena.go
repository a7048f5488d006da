package location

import (
	"sync"

	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
)

// Arena is the indexable graph storage GraphNode and LayeredGraphNode
// reference by integer index instead of by pointer, resolving the cyclic-
// reference concern spec.md §9 raises about a LayeredGraphNode pointing
// back at the graph that owns it: the arena owns plain node ids and
// weighted edges, never a Location back-reference, so there is no cycle to
// break.
//
// One Arena typically backs one planning run; its caches are append-only,
// matching the teacher library's per-instance, non-evicting memoization
// style. Every method takes the Arena's RWMutex, so concurrent calls are
// safe.
type Arena struct {
	mu sync.RWMutex

	baseIndex map[string]int
	baseIDs   []string
	baseLoc   []Location          // heuristic location per base node, may be nil
	baseAdj   []map[int]float64   // baseAdj[u][v] = edge length
	pathCache map[[2]int][]int    // memoized A* result, keyed by (fromIdx,toIdx)
	pathOK    map[[2]int]bool

	layerIndex map[string]int
	layerIDs   []string
	layerAdj   []map[int]struct{} // undirected adjacency between layer ids
}

// NewArena returns an empty Arena ready to accept base and layer nodes.
func NewArena() *Arena {
	return &Arena{
		baseIndex:  make(map[string]int),
		pathCache:  make(map[[2]int][]int),
		pathOK:     make(map[[2]int]bool),
		layerIndex: make(map[string]int),
	}
}

// AddBaseNode registers a base-graph node id with an optional heuristic
// location (used by A*'s straight-line estimate; pass nil if unknown).
// Re-adding an existing id is a no-op and returns its existing index.
func (a *Arena) AddBaseNode(id string, loc Location) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if idx, ok := a.baseIndex[id]; ok {
		return idx
	}
	idx := len(a.baseIDs)
	a.baseIndex[id] = idx
	a.baseIDs = append(a.baseIDs, id)
	a.baseLoc = append(a.baseLoc, loc)
	a.baseAdj = append(a.baseAdj, make(map[int]float64))

	return idx
}

// AddBaseEdge adds a weighted edge between two base nodes, keyed by the
// "length" attribute spec.md §4.2 names. Both directions are added: the
// base graph models traversable corridors, which are symmetric unless a
// caller models one-way corridors by adding only one direction directly
// via the lower-level index API (not exposed; this module's base graphs
// are always undirected corridors).
func (a *Arena) AddBaseEdge(fromID, toID string, length float64) {
	fi := a.AddBaseNode(fromID, nil)
	ti := a.AddBaseNode(toID, nil)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.baseAdj[fi][ti] = length
	a.baseAdj[ti][fi] = length
}

// BaseIndex returns the index of a registered base node id.
func (a *Arena) BaseIndex(id string) (int, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	idx, ok := a.baseIndex[id]

	return idx, ok
}

// BaseID returns the node id at idx.
func (a *Arena) BaseID(idx int) string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.baseIDs[idx]
}

// AddLayerNode registers a layer id. Re-adding an existing id is a no-op.
func (a *Arena) AddLayerNode(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if idx, ok := a.layerIndex[id]; ok {
		return idx
	}
	idx := len(a.layerIDs)
	a.layerIndex[id] = idx
	a.layerIDs = append(a.layerIDs, id)
	a.layerAdj = append(a.layerAdj, make(map[int]struct{}))

	return idx
}

// AddLayerEdge marks two layer ids as directly connected (spec.md §4.2:
// "layer graph has a direct edge between their layer ids").
func (a *Arena) AddLayerEdge(idA, idB string) {
	ai := a.AddLayerNode(idA)
	bi := a.AddLayerNode(idB)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.layerAdj[ai][bi] = struct{}{}
	a.layerAdj[bi][ai] = struct{}{}
}

// LayersConnected reports whether idA and idB have a direct layer edge.
func (a *Arena) LayersConnected(idA, idB string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ai, aok := a.layerIndex[idA]
	bi, bok := a.layerIndex[idB]
	if !aok || !bok {
		return false
	}
	_, has := a.layerAdj[ai][bi]

	return has
}

// errArenaUnknownNode is returned by GraphNode/LayeredGraphNode
// constructors when the referenced base or layer node was never
// registered with the Arena.
var errArenaUnknownNode = errs.ErrNotFound
