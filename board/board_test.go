package board_test

import (
	"testing"

	"github.com/VeBaS-UAV/mamoge-taskplanner/board"
	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
	"github.com/VeBaS-UAV/mamoge-taskplanner/planlog"
	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterReq(t *testing.T, value float64) capability.Requirements {
	t.Helper()
	r, err := capability.NewRequirements(capability.Requirement{Name: "water", Value: value, Consumes: true})
	require.NoError(t, err)

	return r
}

func linearDAG(t *testing.T, n int, reqValue float64) *task.DAG {
	t.Helper()
	dag := task.NewDAG("linear")
	var prev *task.Task
	for i := 0; i < n; i++ {
		id := string(rune('1' + i))
		tk := task.NewTask(id, "task"+id, waterReq(t, reqValue))
		require.NoError(t, dag.AddTask(tk))
		if prev != nil {
			require.NoError(t, dag.SetDownstream(prev, tk))
		}
		prev = tk
	}

	return dag
}

// TestBoard_StateMachine covers S2: applying PLAN, ACCEPT, START, COMPLETED
// in order to the root of a 5-task linear DAG.
func TestBoard_StateMachine(t *testing.T) {
	dag := linearDAG(t, 5, 10)
	b := board.New(planlog.Noop())
	b.Execute(dag)

	root := dag.Roots()[0]
	second := dag.Downstream(root)[0]

	require.NoError(t, b.EventInput(root.ID, task.Plan))
	assert.True(t, root.InState(task.Planned))
	assert.True(t, second.InState(task.Undefined))

	require.NoError(t, b.EventInput(root.ID, task.Accept))
	assert.True(t, root.InState(task.Queued))
	assert.True(t, second.InState(task.Undefined))

	require.NoError(t, b.EventInput(root.ID, task.Start))
	assert.True(t, root.InState(task.Running))
	assert.True(t, second.InState(task.Undefined))

	require.NoError(t, b.EventInput(root.ID, task.Done))
	assert.True(t, root.InState(task.Completed))
	assert.True(t, second.InState(task.Available))
}

func TestBoard_InvalidTransitionIsIgnoredNotFatal(t *testing.T) {
	dag := linearDAG(t, 2, 10)
	b := board.New(planlog.Noop())
	b.Execute(dag)

	root := dag.Roots()[0]
	err := b.EventInput(root.ID, task.Start) // AVAILABLE has no START transition
	require.NoError(t, err)
	assert.True(t, root.InState(task.Available))
}

// TestBoard_OpenListFilteredByCapabilities covers S3.
func TestBoard_OpenListFilteredByCapabilities(t *testing.T) {
	dag := linearDAG(t, 5, 10)
	b := board.New(planlog.Noop())
	b.Execute(dag)

	low := capability.NewCapabilities(capability.Capability{Name: "water", Value: 5})
	open := b.GetOpenList(&low)
	assert.Empty(t, open)

	ok := capability.NewCapabilities(capability.Capability{Name: "water", Value: 10})
	open = b.GetOpenList(&ok)
	require.Len(t, open, 1)
	assert.Equal(t, dag.Roots()[0].ID, open[0].ID)
}

// TestBoard_TasklistTruncation covers S4: branch T1->T2->{T3, T4->T5}, each
// requiring water=10 consumes; under water=30 capability, two paths of
// length 3.
func TestBoard_TasklistTruncation(t *testing.T) {
	dag := task.NewDAG("branch")
	t1 := task.NewTask("t1", "t1", waterReq(t, 10))
	t2 := task.NewTask("t2", "t2", waterReq(t, 10))
	t3 := task.NewTask("t3", "t3", waterReq(t, 10))
	t4 := task.NewTask("t4", "t4", waterReq(t, 10))
	t5 := task.NewTask("t5", "t5", waterReq(t, 10))
	for _, tk := range []*task.Task{t1, t2, t3, t4, t5} {
		require.NoError(t, dag.AddTask(tk))
	}
	require.NoError(t, dag.SetDownstream(t1, t2))
	require.NoError(t, dag.SetDownstream(t2, t3))
	require.NoError(t, dag.SetDownstream(t2, t4))
	require.NoError(t, dag.SetDownstream(t4, t5))

	b := board.New(planlog.Noop())
	b.Execute(dag)

	caps := capability.NewCapabilities(capability.Capability{Name: "water", Value: 30})
	lists := b.GetTasklists(&caps)

	require.Len(t, lists, 2)
	for _, path := range lists {
		assert.Len(t, path, 3)
	}
}

func TestBoard_TaskByIDNotFound(t *testing.T) {
	b := board.New(planlog.Noop())
	_, _, err := b.TaskByID("missing")
	assert.Error(t, err)
}

func TestBoard_GetSubgraph(t *testing.T) {
	dag := linearDAG(t, 3, 10)
	b := board.New(planlog.Noop())
	b.Execute(dag)

	subs := b.GetSubgraph(nil)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Tasks(), 3)
}
