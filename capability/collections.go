package capability

import "sort"

// Requirements is a name-keyed collection of Requirement values. Addition
// of a Requirement with an existing name accumulates (value += value);
// insertion order is irrelevant (spec.md §3).
type Requirements struct {
	byName map[string]Requirement
}

// NewRequirements builds a Requirements collection from zero or more
// Requirement values, accumulating duplicates by name exactly as repeated
// calls to Add would.
func NewRequirements(reqs ...Requirement) (Requirements, error) {
	rs := Requirements{byName: make(map[string]Requirement, len(reqs))}
	for _, r := range reqs {
		if err := rs.Add(r); err != nil {
			return Requirements{}, err
		}
	}

	return rs, nil
}

// Add accumulates req into rs by name: a new name is inserted, an existing
// name has its value summed (Requirement.Add's accumulate semantics).
func (rs *Requirements) Add(req Requirement) error {
	if rs.byName == nil {
		rs.byName = make(map[string]Requirement)
	}
	if existing, ok := rs.byName[req.Name]; ok {
		summed, err := existing.Add(req)
		if err != nil {
			return err
		}
		rs.byName[req.Name] = summed

		return nil
	}
	rs.byName[req.Name] = req

	return nil
}

// AddAll merges every requirement of other into rs, accumulating by name.
func (rs *Requirements) AddAll(other Requirements) error {
	for _, name := range other.Names() {
		if err := rs.Add(other.byName[name]); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the Requirement named name and whether it is present.
func (rs Requirements) Get(name string) (Requirement, bool) {
	r, ok := rs.byName[name]

	return r, ok
}

// Len reports how many distinct named requirements rs holds.
func (rs Requirements) Len() int { return len(rs.byName) }

// Names returns the requirement names in sorted order, for deterministic
// iteration (tests and serialization rely on this).
func (rs Requirements) Names() []string {
	names := make([]string, 0, len(rs.byName))
	for n := range rs.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Copy returns an independent deep copy of rs.
func (rs Requirements) Copy() Requirements {
	cpy := Requirements{byName: make(map[string]Requirement, len(rs.byName))}
	for k, v := range rs.byName {
		cpy.byName[k] = v
	}

	return cpy
}

// Meet reports whether caps satisfies every requirement in rs: for each
// r in rs there must exist a same-named capability in caps with at least
// r's value. A missing capability means unsatisfied (spec.md §4.1).
func (rs Requirements) Meet(caps Capabilities) bool {
	for _, name := range rs.Names() {
		req := rs.byName[name]
		cap, ok := caps.Get(name)
		if !ok {
			return false
		}
		if !req.Meet(cap) {
			return false
		}
	}

	return true
}

// ToDict returns the JSON-ready map form, keyed by requirement name,
// matching the original source's Requirements.to_dict().
func (rs Requirements) ToDict() map[string]any {
	out := make(map[string]any, len(rs.byName))
	for name, r := range rs.byName {
		out[name] = r.ToDict()
	}

	return out
}

// RequirementsFromDict reconstructs a Requirements collection from its
// ToDict form.
func RequirementsFromDict(d map[string]any) (Requirements, error) {
	rs := Requirements{byName: make(map[string]Requirement, len(d))}
	for _, raw := range d {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		r, err := RequirementFromDict(m)
		if err != nil {
			return Requirements{}, err
		}
		rs.byName[r.Name] = r
	}

	return rs, nil
}

// Capabilities is a name-keyed collection of Capability values. Addition of
// a Capability with an existing name overwrites (spec.md §3) — unlike
// Requirements, values do not accumulate.
type Capabilities struct {
	byName map[string]Capability
}

// NewCapabilities builds a Capabilities collection from zero or more
// Capability values; a repeated name keeps the last value, matching Add's
// overwrite semantics.
func NewCapabilities(caps ...Capability) Capabilities {
	cs := Capabilities{byName: make(map[string]Capability, len(caps))}
	for _, c := range caps {
		cs.Add(c)
	}

	return cs
}

// Add overwrites any existing capability named c.Name with c.
func (cs *Capabilities) Add(c Capability) {
	if cs.byName == nil {
		cs.byName = make(map[string]Capability)
	}
	cs.byName[c.Name] = c
}

// Get returns the Capability named name and whether it is present.
func (cs Capabilities) Get(name string) (Capability, bool) {
	c, ok := cs.byName[name]

	return c, ok
}

// Names returns the capability names in sorted order.
func (cs Capabilities) Names() []string {
	names := make([]string, 0, len(cs.byName))
	for n := range cs.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Copy returns an independent deep copy of cs.
func (cs Capabilities) Copy() Capabilities {
	cpy := Capabilities{byName: make(map[string]Capability, len(cs.byName))}
	for k, v := range cs.byName {
		cpy.byName[k] = v
	}

	return cpy
}

// Satisfy reports whether cs satisfies every requirement in reqs. It is the
// dual of Requirements.Meet and must agree with it (spec.md §8 invariant 1).
func (cs Capabilities) Satisfy(reqs Requirements) bool {
	for _, name := range reqs.Names() {
		req := reqs.byName[name]
		cap, ok := cs.byName[name]
		if !ok {
			return false
		}
		if !cap.Satisfy(req) {
			return false
		}
	}

	return true
}

// ToDict returns the JSON-ready map form, keyed by capability name.
func (cs Capabilities) ToDict() map[string]any {
	out := make(map[string]any, len(cs.byName))
	for name, c := range cs.byName {
		out[name] = c.ToDict()
	}

	return out
}

// CapabilitiesFromDict reconstructs a Capabilities collection from its
// ToDict form.
func CapabilitiesFromDict(d map[string]any) (Capabilities, error) {
	cs := Capabilities{byName: make(map[string]Capability, len(d))}
	for _, raw := range d {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		c, err := CapabilityFromDict(m)
		if err != nil {
			return Capabilities{}, err
		}
		cs.byName[c.Name] = c
	}

	return cs, nil
}
