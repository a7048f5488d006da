package capability

// CapabilityBag pairs a worker's Capabilities with the Requirements it has
// tentatively committed to, and answers incremental-feasibility queries
// against what remains (spec.md §3).
type CapabilityBag struct {
	Capabilities Capabilities
	Requirements Requirements
}

// NewCapabilityBag returns a CapabilityBag over caps with no requirements
// committed yet.
func NewCapabilityBag(caps Capabilities) CapabilityBag {
	return CapabilityBag{Capabilities: caps, Requirements: Requirements{byName: make(map[string]Requirement)}}
}

// Remaining returns a copy of b.Capabilities with every consuming
// requirement in b.Requirements subtracted by name. Non-consuming
// requirements do not reduce capability value — they only gate
// satisfaction, never deplete the resource.
func (b CapabilityBag) Remaining() Capabilities {
	remaining := b.Capabilities.Copy()
	for _, name := range b.Requirements.Names() {
		req := b.Requirements.byName[name]
		if !req.Consumes {
			continue
		}
		cap, ok := remaining.byName[name]
		if !ok {
			continue
		}
		reduced, err := cap.Sub(req)
		if err != nil {
			// Names were matched by construction; Sub only errors on a
			// name mismatch, which cannot happen via this lookup.
			continue
		}
		remaining.byName[name] = reduced
	}

	return remaining
}

// CanAdd reports whether committing reqs on top of b's already-committed
// requirements still leaves enough remaining capability to satisfy them.
func (b CapabilityBag) CanAdd(reqs Requirements) bool {
	return reqs.Meet(b.Remaining())
}

// Commit returns a new CapabilityBag with reqs merged into the committed
// requirements, accumulating by name as Requirements.Add does.
func (b CapabilityBag) Commit(reqs Requirements) (CapabilityBag, error) {
	merged := b.Requirements.Copy()
	if err := merged.AddAll(reqs); err != nil {
		return CapabilityBag{}, err
	}

	return CapabilityBag{Capabilities: b.Capabilities, Requirements: merged}, nil
}
