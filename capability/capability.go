// Package capability implements the capability algebra (spec.md §4.1): named,
// numerically valued resource descriptors, and the satisfaction relation
// between a worker's Capabilities and a task's Requirements.
//
// Grounded on the sentinel-error, explicit-method style of
// github.com/katalvlaran/lvlath/core (no operator overloading — Go has
// none, but the design note in spec.md §9 is carried forward as explicit
// Add/Sub/Meet/Satisfy methods) and on the original Python source's
// mamoge/models/capabilities.py for exact accumulate/overwrite semantics.
package capability

import (
	"fmt"

	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
)

// Requirement is a named, numerically valued resource demand. Consumes
// marks whether committing a task that carries this Requirement reduces a
// matching Capability's value by Value (spec.md §3).
type Requirement struct {
	Name     string
	Value    float64
	Consumes bool
}

// Capability is a named, numerically valued resource a worker offers.
type Capability struct {
	Name  string
	Value float64
}

// Meet reports whether this Requirement is satisfied by cap: same name and
// req.Value <= cap.Value. A name mismatch is simply "not met", not an
// error — Meet is a total relation over differently-named pairs.
func (r Requirement) Meet(cap Capability) bool {
	return r.Name == cap.Name && r.Value <= cap.Value
}

// Satisfy is the dual of Meet: this Capability satisfies req iff same name
// and cap.Value >= req.Value.
func (c Capability) Satisfy(req Requirement) bool {
	return c.Name == req.Name && c.Value >= req.Value
}

// Add accumulates other into r by numeric addition, provided the names
// match. It returns a new Requirement and leaves r untouched.
//
// Name mismatch is a programming error (errs.ErrInvalidName): unlike Meet,
// Add is not a total relation — it is only meaningful between requirements
// for the same named resource.
func (r Requirement) Add(other Requirement) (Requirement, error) {
	if r.Name != other.Name {
		return Requirement{}, errs.Wrapf(errs.ErrInvalidName, "capability: cannot sum requirement %q with %q", r.Name, other.Name)
	}

	return Requirement{Name: r.Name, Value: r.Value + other.Value, Consumes: r.Consumes || other.Consumes}, nil
}

// Sub value-subtracts req from c, provided the names match. It returns a
// new Capability and leaves c untouched.
//
// Name mismatch is a programming error (errs.ErrInvalidName), per
// spec.md §4.1.
func (c Capability) Sub(req Requirement) (Capability, error) {
	if c.Name != req.Name {
		return Capability{}, errs.Wrapf(errs.ErrInvalidName, "capability: cannot subtract requirement %q from capability %q", req.Name, c.Name)
	}

	return Capability{Name: c.Name, Value: c.Value - req.Value}, nil
}

// ToDict returns the JSON-ready map form of r, matching the original
// source's Requirement.to_dict().
func (r Requirement) ToDict() map[string]any {
	return map[string]any{"name": r.Name, "value": r.Value, "consumes": r.Consumes}
}

// RequirementFromDict reconstructs a Requirement from its ToDict form.
func RequirementFromDict(d map[string]any) (Requirement, error) {
	name, _ := d["name"].(string)
	value, err := toFloat(d["value"])
	if err != nil {
		return Requirement{}, fmt.Errorf("capability: requirement value: %w", err)
	}
	consumes, _ := d["consumes"].(bool)

	return Requirement{Name: name, Value: value, Consumes: consumes}, nil
}

// ToDict returns the JSON-ready map form of c.
func (c Capability) ToDict() map[string]any {
	return map[string]any{"name": c.Name, "value": c.Value}
}

// CapabilityFromDict reconstructs a Capability from its ToDict form.
func CapabilityFromDict(d map[string]any) (Capability, error) {
	name, _ := d["name"].(string)
	value, err := toFloat(d["value"])
	if err != nil {
		return Capability{}, fmt.Errorf("capability: capability value: %w", err)
	}

	return Capability{Name: name, Value: value}, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("capability: value %v is not numeric", v)
	}
}
