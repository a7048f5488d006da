package location

import "container/heap"

// PathTo returns the ordered list of base-node ids from fromIdx to toIdx
// using A* with the heuristic "direct distance_to between endpoint
// locations" and edge weight "length", falling back to a uniform weight of
// 1 for an edge whose registered length is not positive (spec.md §4.2).
// The result is memoized per (fromIdx, toIdx) pair for the lifetime of the
// Arena; ok is false when no path exists.
func (a *Arena) PathTo(fromIdx, toIdx int) ([]string, bool) {
	idxPath, ok := a.pathIndices(fromIdx, toIdx)
	if !ok {
		return nil, false
	}
	ids := make([]string, len(idxPath))
	a.mu.RLock()
	for i, idx := range idxPath {
		ids[i] = a.baseIDs[idx]
	}
	a.mu.RUnlock()

	return ids, true
}

func (a *Arena) pathIndices(fromIdx, toIdx int) ([]int, bool) {
	key := [2]int{fromIdx, toIdx}

	a.mu.RLock()
	if cached, done := a.pathOK[key]; done {
		path := a.pathCache[key]
		a.mu.RUnlock()

		return path, cached
	}
	a.mu.RUnlock()

	path, ok := a.runAStar(fromIdx, toIdx)

	a.mu.Lock()
	a.pathOK[key] = ok
	a.pathCache[key] = path
	a.mu.Unlock()

	return path, ok
}

func (a *Arena) heuristic(u, v int) float64 {
	a.mu.RLock()
	lu, lv := a.baseLoc[u], a.baseLoc[v]
	a.mu.RUnlock()
	if lu == nil || lv == nil {
		return 0
	}
	d, ok := lu.DistanceTo(lv)
	if !ok {
		return 0
	}

	return d
}

type astarItem struct {
	idx    int
	fScore float64
}

type astarPQ []astarItem

func (pq astarPQ) Len() int            { return len(pq) }
func (pq astarPQ) Less(i, j int) bool  { return pq[i].fScore < pq[j].fScore }
func (pq astarPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *astarPQ) Push(x interface{}) { *pq = append(*pq, x.(astarItem)) }
func (pq *astarPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// runAStar runs A* over the arena's base adjacency, uncached.
func (a *Arena) runAStar(start, goal int) ([]int, bool) {
	a.mu.RLock()
	n := len(a.baseIDs)
	a.mu.RUnlock()
	if start < 0 || goal < 0 || start >= n || goal >= n {
		return nil, false
	}
	if start == goal {
		return []int{start}, true
	}

	const inf = 1e18
	gScore := make([]float64, n)
	cameFrom := make([]int, n)
	visited := make([]bool, n)
	for i := range gScore {
		gScore[i] = inf
		cameFrom[i] = -1
	}
	gScore[start] = 0

	pq := &astarPQ{{idx: start, fScore: a.heuristic(start, goal)}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(astarItem)
		u := cur.idx
		if visited[u] {
			continue
		}
		if u == goal {
			return reconstructPath(cameFrom, start, goal), true
		}
		visited[u] = true

		a.mu.RLock()
		neighbors := a.baseAdj[u]
		a.mu.RUnlock()

		for v, weight := range neighbors {
			if weight <= 0 {
				weight = 1 // uniform fallback per spec.md §4.2
			}
			cand := gScore[u] + weight
			if cand < gScore[v] {
				gScore[v] = cand
				cameFrom[v] = u
				heap.Push(pq, astarItem{idx: v, fScore: cand + a.heuristic(v, goal)})
			}
		}
	}

	return nil, false
}

func reconstructPath(cameFrom []int, start, goal int) []int {
	path := []int{goal}
	cur := goal
	for cur != start {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	// Reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
