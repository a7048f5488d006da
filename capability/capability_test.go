package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
)

// S1 from SPEC_FULL.md §8: Requirement("water",10).Meet(Capability("water",10))
// is true; value 9 is false; value 20 is true.
func TestRequirement_Meet(t *testing.T) {
	req := capability.Requirement{Name: "water", Value: 10}

	assert.True(t, req.Meet(capability.Capability{Name: "water", Value: 10}))
	assert.False(t, req.Meet(capability.Capability{Name: "water", Value: 9}))
	assert.True(t, req.Meet(capability.Capability{Name: "water", Value: 20}))
	assert.False(t, req.Meet(capability.Capability{Name: "fuel", Value: 100}))
}

// Invariant 1 (SPEC_FULL.md §8): Meet and Satisfy must agree for same-named
// pairs, and both must reduce to a plain value comparison.
func TestMeetSatisfyAgree(t *testing.T) {
	cases := []struct {
		reqValue, capValue float64
	}{
		{10, 10}, {9, 10}, {20, 10}, {0, 0}, {1, 0},
	}
	for _, tc := range cases {
		req := capability.Requirement{Name: "x", Value: tc.reqValue}
		cap := capability.Capability{Name: "x", Value: tc.capValue}
		want := cap.Value >= req.Value
		assert.Equal(t, want, req.Meet(cap))
		assert.Equal(t, want, cap.Satisfy(req))
	}
}

func TestRequirement_Add(t *testing.T) {
	a := capability.Requirement{Name: "water", Value: 5, Consumes: true}
	b := capability.Requirement{Name: "water", Value: 3}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 8.0, sum.Value)
	assert.True(t, sum.Consumes)

	_, err = a.Add(capability.Requirement{Name: "fuel", Value: 1})
	assert.ErrorContains(t, err, "invalid name")
}

func TestCapability_Sub(t *testing.T) {
	cap := capability.Capability{Name: "water", Value: 10}
	reduced, err := cap.Sub(capability.Requirement{Name: "water", Value: 4})
	require.NoError(t, err)
	assert.Equal(t, 6.0, reduced.Value)

	_, err = cap.Sub(capability.Requirement{Name: "fuel", Value: 1})
	assert.Error(t, err)
}

func TestRequirements_AccumulateByName(t *testing.T) {
	reqs, err := capability.NewRequirements(
		capability.Requirement{Name: "water", Value: 5},
		capability.Requirement{Name: "water", Value: 5},
		capability.Requirement{Name: "fuel", Value: 2},
	)
	require.NoError(t, err)

	water, ok := reqs.Get("water")
	require.True(t, ok)
	assert.Equal(t, 10.0, water.Value)
	assert.Equal(t, 2, reqs.Len())
}

func TestCapabilities_OverwriteByName(t *testing.T) {
	caps := capability.NewCapabilities(
		capability.Capability{Name: "water", Value: 5},
		capability.Capability{Name: "water", Value: 9},
	)

	water, ok := caps.Get("water")
	require.True(t, ok)
	assert.Equal(t, 9.0, water.Value)
}

func TestRequirements_Meet_MissingCapability(t *testing.T) {
	reqs, _ := capability.NewRequirements(capability.Requirement{Name: "water", Value: 10})
	caps := capability.NewCapabilities(capability.Capability{Name: "fuel", Value: 100})

	assert.False(t, reqs.Meet(caps))
	assert.False(t, caps.Satisfy(reqs))
}

func TestCapabilityBag_CanAdd(t *testing.T) {
	bag := capability.NewCapabilityBag(capability.NewCapabilities(
		capability.Capability{Name: "water", Value: 30},
	))

	committed, err := capability.NewRequirements(capability.Requirement{Name: "water", Value: 10, Consumes: true})
	require.NoError(t, err)

	bag, err = bag.Commit(committed)
	require.NoError(t, err)

	// 20 remain: asking for 20 more fits, 21 does not.
	ok20, _ := capability.NewRequirements(capability.Requirement{Name: "water", Value: 20, Consumes: true})
	ok21, _ := capability.NewRequirements(capability.Requirement{Name: "water", Value: 21, Consumes: true})

	assert.True(t, bag.CanAdd(ok20))
	assert.False(t, bag.CanAdd(ok21))
}

func TestCapabilityBag_NonConsumingDoesNotDeplete(t *testing.T) {
	bag := capability.NewCapabilityBag(capability.NewCapabilities(
		capability.Capability{Name: "altitude_ceiling", Value: 100},
	))
	gate, _ := capability.NewRequirements(capability.Requirement{Name: "altitude_ceiling", Value: 50, Consumes: false})
	bag, err := bag.Commit(gate)
	require.NoError(t, err)

	remaining := bag.Remaining()
	v, ok := remaining.Get("altitude_ceiling")
	require.True(t, ok)
	assert.Equal(t, 100.0, v.Value)
}

func TestDictRoundTrip(t *testing.T) {
	reqs, _ := capability.NewRequirements(
		capability.Requirement{Name: "water", Value: 10, Consumes: true},
		capability.Requirement{Name: "fuel", Value: 3},
	)
	d := reqs.ToDict()
	back, err := capability.RequirementsFromDict(d)
	require.NoError(t, err)
	assert.Equal(t, reqs.Names(), back.Names())

	caps := capability.NewCapabilities(capability.Capability{Name: "water", Value: 99})
	cd := caps.ToDict()
	cback, err := capability.CapabilitiesFromDict(cd)
	require.NoError(t, err)
	w, _ := cback.Get("water")
	assert.Equal(t, 99.0, w.Value)
}
