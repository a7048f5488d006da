package location

// GraphNode is a location identified by a node in an Arena's base graph.
// It holds an integer index rather than a pointer to the node itself
// (spec.md §9); BaseGraphRef is the owning Arena.
type GraphNode struct {
	BaseGraphRef *Arena
	NodeIdx      int
}

// NewGraphNode returns a GraphNode for nodeID, which must already be
// registered in arena (via AddBaseNode or AddBaseEdge).
func NewGraphNode(arena *Arena, nodeID string) (GraphNode, error) {
	idx, ok := arena.BaseIndex(nodeID)
	if !ok {
		return GraphNode{}, errArenaUnknownNode
	}

	return GraphNode{BaseGraphRef: arena, NodeIdx: idx}, nil
}

// AsTuple delegates to the node's registered heuristic location, if any;
// otherwise returns the zero Tuple.
func (g GraphNode) AsTuple() Tuple {
	g.BaseGraphRef.mu.RLock()
	loc := g.BaseGraphRef.baseLoc[g.NodeIdx]
	g.BaseGraphRef.mu.RUnlock()
	if loc == nil {
		return Tuple{}
	}

	return loc.AsTuple()
}

// PathTo returns the ordered list of base-graph node ids from g to other,
// or (nil, false) if no path exists (spec.md §3: GraphNode.path_to).
func (g GraphNode) PathTo(other GraphNode) ([]string, bool) {
	if g.BaseGraphRef != other.BaseGraphRef {
		return nil, false
	}

	return g.BaseGraphRef.PathTo(g.NodeIdx, other.NodeIdx)
}

// DistanceTo sums distance_to along path_to (spec.md §4.2): 0 against
// Zero, the summed path length against another GraphNode in the same
// Arena, unsupported otherwise.
func (g GraphNode) DistanceTo(other Location) (float64, bool) {
	if isZero(other) {
		return 0, true
	}
	og, ok := other.(GraphNode)
	if !ok || g.BaseGraphRef != og.BaseGraphRef {
		return 0, false
	}
	idxPath, ok := g.BaseGraphRef.pathIndices(g.NodeIdx, og.NodeIdx)
	if !ok || len(idxPath) == 0 {
		return 0, false
	}

	var total float64
	g.BaseGraphRef.mu.RLock()
	for i := 0; i+1 < len(idxPath); i++ {
		u, v := idxPath[i], idxPath[i+1]
		lu, lv := g.BaseGraphRef.baseLoc[u], g.BaseGraphRef.baseLoc[v]
		if lu != nil && lv != nil {
			if d, ok := lu.DistanceTo(lv); ok {
				total += d

				continue
			}
		}
		// Fall back to the edge's registered "length" weight.
		total += g.BaseGraphRef.baseAdj[u][v]
	}
	g.BaseGraphRef.mu.RUnlock()

	return total, true
}

// LayeredGraphNode is a location identified by a node within one layer of a
// layered graph (spec.md §3): layer_id selects the layer, base_id selects
// the underlying base-graph node that layer maps to.
type LayeredGraphNode struct {
	LayerGraphRef *Arena
	BaseGraphRef  *Arena
	LayerID       string
	BaseIdx       int
}

// NewLayeredGraphNode returns a LayeredGraphNode for the given layer and
// base node ids. layerGraphRef and baseGraphRef may be the same Arena if a
// caller models both graphs in one arena, or distinct arenas when the
// layer topology is tracked separately from the base corridor graph.
func NewLayeredGraphNode(layerGraphRef, baseGraphRef *Arena, layerID, baseID string) (LayeredGraphNode, error) {
	layerGraphRef.AddLayerNode(layerID)
	baseIdx, ok := baseGraphRef.BaseIndex(baseID)
	if !ok {
		return LayeredGraphNode{}, errArenaUnknownNode
	}

	return LayeredGraphNode{
		LayerGraphRef: layerGraphRef,
		BaseGraphRef:  baseGraphRef,
		LayerID:       layerID,
		BaseIdx:       baseIdx,
	}, nil
}

// AsTuple delegates to the underlying base node's heuristic location.
func (l LayeredGraphNode) AsTuple() Tuple {
	l.BaseGraphRef.mu.RLock()
	loc := l.BaseGraphRef.baseLoc[l.BaseIdx]
	l.BaseGraphRef.mu.RUnlock()
	if loc == nil {
		return Tuple{}
	}

	return loc.AsTuple()
}

// DistanceTo implements spec.md §4.2's LayeredGraphNode rule: equal layer
// ids → 0; a direct layer edge → delegate to base-graph path length;
// otherwise unsupported (no cross-layer distance without a layer edge).
func (l LayeredGraphNode) DistanceTo(other Location) (float64, bool) {
	if isZero(other) {
		return 0, true
	}
	ol, ok := other.(LayeredGraphNode)
	if !ok {
		return 0, false
	}
	if l.LayerID == ol.LayerID {
		return 0, true
	}
	if !l.LayerGraphRef.LayersConnected(l.LayerID, ol.LayerID) {
		return 0, false
	}

	gn := GraphNode{BaseGraphRef: l.BaseGraphRef, NodeIdx: l.BaseIdx}
	ogn := GraphNode{BaseGraphRef: ol.BaseGraphRef, NodeIdx: ol.BaseIdx}

	return gn.DistanceTo(ogn)
}
