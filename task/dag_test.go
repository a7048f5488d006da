package task_test

import (
	"testing"

	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyReqs(t *testing.T) capability.Requirements {
	t.Helper()
	r, err := capability.NewRequirements()
	require.NoError(t, err)

	return r
}

func TestDAG_AddTaskRewritesID(t *testing.T) {
	dag := task.NewDAG("orders")
	tk := task.NewTask("pick", "pick item", emptyReqs(t))

	require.NoError(t, dag.AddTask(tk))
	assert.Equal(t, "orders/pick", tk.ID)
}

func TestDAG_AddTaskDuplicateErrors(t *testing.T) {
	dag := task.NewDAG("orders")
	a := task.NewTask("pick", "pick item", emptyReqs(t))
	b := task.NewTask("pick", "pick item again", emptyReqs(t))

	require.NoError(t, dag.AddTask(a))
	assert.Error(t, dag.AddTask(b))
}

func TestDAG_RootsAndDownstream(t *testing.T) {
	dag := task.NewDAG("orders")
	a := task.NewTask("a", "a", emptyReqs(t))
	b := task.NewTask("b", "b", emptyReqs(t))
	c := task.NewTask("c", "c", emptyReqs(t))
	require.NoError(t, dag.AddTask(a))
	require.NoError(t, dag.AddTask(b))
	require.NoError(t, dag.AddTask(c))
	require.NoError(t, dag.SetDownstream(a, b))
	require.NoError(t, dag.SetDownstream(b, c))

	roots := dag.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, a.ID, roots[0].ID)

	down := dag.Downstream(a)
	require.Len(t, down, 1)
	assert.Equal(t, b.ID, down[0].ID)

	sinks := dag.Sinks()
	require.Len(t, sinks, 1)
	assert.Equal(t, c.ID, sinks[0].ID)
}

func TestDAG_SetDownstreamRejectsCycle(t *testing.T) {
	dag := task.NewDAG("orders")
	a := task.NewTask("a", "a", emptyReqs(t))
	b := task.NewTask("b", "b", emptyReqs(t))
	require.NoError(t, dag.AddTask(a))
	require.NoError(t, dag.AddTask(b))
	require.NoError(t, dag.SetDownstream(a, b))

	err := dag.SetDownstream(b, a)
	assert.Error(t, err)
}

func TestDAG_RoundTripToDictFromDict(t *testing.T) {
	dag := task.NewDAG("orders")
	a := task.NewTask("a", "first", emptyReqs(t))
	b := task.NewTask("b", "second", emptyReqs(t))
	require.NoError(t, dag.AddTask(a))
	require.NoError(t, dag.AddTask(b))
	require.NoError(t, dag.SetDownstream(a, b))

	d1 := dag.ToDict()
	restored, err := task.DAGFromDict(d1)
	require.NoError(t, err)
	d2 := restored.ToDict()

	assert.Equal(t, d1, d2)
}

func TestTask_SetStateAndMeetCapabilities(t *testing.T) {
	req, err := capability.NewRequirements(capability.Requirement{Name: "water", Value: 10, Consumes: true})
	require.NoError(t, err)
	tk := task.NewTask("t1", "deliver water", req)

	assert.True(t, tk.InState(task.Undefined))
	tk.SetState(task.Available)
	assert.True(t, tk.InState(task.Available))

	caps := capability.NewCapabilities(capability.Capability{Name: "water", Value: 10})
	assert.True(t, tk.MeetCapabilities(caps))

	caps2 := capability.NewCapabilities(capability.Capability{Name: "water", Value: 5})
	assert.False(t, tk.MeetCapabilities(caps2))
}

func TestSyncPoint_HasEmptyRequirements(t *testing.T) {
	sp := task.NewSyncPoint("sync1", "join")
	assert.Equal(t, 0, sp.Requirements.Len())
}
