package location

import "github.com/VeBaS-UAV/mamoge-taskplanner/errs"

// typeTag names are the "type" discriminator spec.md §6 requires on every
// serialized Location, mirroring the original source's
// LocationBuilder._location_classes registry of type-tag to constructor.
const (
	TagCartesian        = "cartesian"
	TagGeodesic         = "geodesic"
	TagZero             = "zero"
	TagGraphNode        = "graph_node"
	TagLayeredGraphNode = "layered_graph_node"
)

// Constructor builds a Location from its decoded JSON fields.
type Constructor func(fields map[string]any) (Location, error)

var registry = map[string]Constructor{
	TagCartesian: cartesianFromDict,
	TagGeodesic:  geodesicFromDict,
	TagZero:      zeroFromDict,
}

// Register adds or replaces the constructor for a type tag, letting a
// caller extend the registry with GraphNode/LayeredGraphNode constructors
// bound to a specific Arena (those two variants need an Arena reference
// that a tag-only JSON payload cannot carry on its own).
func Register(tag string, ctor Constructor) {
	registry[tag] = ctor
}

// ToDict renders a Location as a type-tagged map ready for JSON encoding.
func ToDict(l Location) (map[string]any, error) {
	switch v := l.(type) {
	case Cartesian:
		d := map[string]any{"type": TagCartesian, "x": v.X, "y": v.Y, "z": v.Z, "has_z": v.HasZ}

		return d, nil
	case Geodesic:
		return map[string]any{"type": TagGeodesic, "lat": v.Lat, "lon": v.Lon, "alt": v.Alt, "has_alt": v.HasAlt}, nil
	case Zero:
		return map[string]any{"type": TagZero}, nil
	case GraphNode:
		return map[string]any{"type": TagGraphNode, "node_id": v.BaseGraphRef.BaseID(v.NodeIdx)}, nil
	case LayeredGraphNode:
		return map[string]any{
			"type":    TagLayeredGraphNode,
			"layer":   v.LayerID,
			"node_id": v.BaseGraphRef.BaseID(v.BaseIdx),
		}, nil
	default:
		return nil, errs.Wrapf(errs.ErrInvalidName, "location: unknown variant %T", l)
	}
}

// FromDict reconstructs a Location from a type-tagged map, dispatching
// through the registry by its "type" field.
func FromDict(d map[string]any) (Location, error) {
	tag, ok := d["type"].(string)
	if !ok {
		return nil, errs.Wrapf(errs.ErrInvalidName, "location: missing type tag")
	}
	ctor, ok := registry[tag]
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "location: unregistered type tag %q", tag)
	}

	return ctor(d)
}

func toFloat(v any) float64 {
	f, _ := v.(float64)

	return f
}

func cartesianFromDict(d map[string]any) (Location, error) {
	hasZ, _ := d["has_z"].(bool)

	return Cartesian{X: toFloat(d["x"]), Y: toFloat(d["y"]), Z: toFloat(d["z"]), HasZ: hasZ}, nil
}

func geodesicFromDict(d map[string]any) (Location, error) {
	hasAlt, _ := d["has_alt"].(bool)

	return Geodesic{
		Lat: toFloat(d["lat"]), Lon: toFloat(d["lon"]), Alt: toFloat(d["alt"]), HasAlt: hasAlt,
		memo: defaultGeodesicMemo,
	}, nil
}

func zeroFromDict(map[string]any) (Location, error) {
	return Zero{}, nil
}
