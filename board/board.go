// Package board implements the Process Board (spec.md §4.4): an ordered
// collection of active DAGs, the task-event state machine, and the query
// surface (open list, tasklists, induced subgraph) that feeds route
// optimization.
//
// Grounded on the teacher library's core.Graph locking discipline (a
// single RWMutex guarding a plain-data store, methods taking the lock for
// their own duration) and on the original Python source's
// mamoge/models/process_board.py and mamoge/processboard/nx_utils.py for
// the state machine and DFS path enumeration.
package board

import (
	"sync"

	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
	"github.com/VeBaS-UAV/mamoge-taskplanner/errs"
	"github.com/VeBaS-UAV/mamoge-taskplanner/planlog"
	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
)

// stateRank orders states for the "already more advanced than AVAILABLE"
// check cascading enablement needs (spec.md §4.4, §9 open question 1:
// a successor already PLANNED or later is left alone).
var stateRank = map[task.State]int{
	task.Undefined: 0,
	task.Available: 1,
	task.Planned:   2,
	task.Queued:    3,
	task.Running:   4,
	task.Completed: 5,
	task.Failure:   5,
}

// transitions is the task event state machine (spec.md §4.4). A (state,
// event) pair absent from this table is an invalid transition: ignored,
// logged as a warning, never returned as a fatal error (matching the
// original source's "ignored with warning" behavior).
var transitions = map[task.State]map[task.Event]task.State{
	task.Available: {task.Plan: task.Planned},
	task.Planned:   {task.Accept: task.Queued},
	task.Queued:    {task.Start: task.Running},
	task.Running: {
		task.Done:  task.Completed,
		task.Error: task.Failure,
	},
	task.Failure: {task.Resolved: task.Planned},
}

// Board is the ordered collection of active DAGs plus the state machine
// driving task execution.
type Board struct {
	mu     sync.RWMutex
	dags   []*task.DAG
	logger planlog.Logger
}

// New returns an empty Board. logger may be nil, in which case
// planlog.Default is used.
func New(logger planlog.Logger) *Board {
	if logger == nil {
		logger = planlog.Default()
	}

	return &Board{logger: logger}
}

// Execute appends dag to the board and sets every root task to Available
// (spec.md §4.4: execute(dag)).
func (b *Board) Execute(dag *task.DAG) {
	b.mu.Lock()
	b.dags = append(b.dags, dag)
	b.mu.Unlock()

	for _, root := range dag.Roots() {
		root.SetState(task.Available)
	}
}

// Tasks returns the union of tasks across every DAG on the board (spec.md
// §4.4: tasks() → map id→Task).
func (b *Board) Tasks() map[string]*task.Task {
	b.mu.RLock()
	dags := append([]*task.DAG(nil), b.dags...)
	b.mu.RUnlock()

	out := make(map[string]*task.Task)
	for _, d := range dags {
		for id, t := range d.Tasks() {
			out[id] = t
		}
	}

	return out
}

// TaskByID returns the task named id and the DAG that owns it, or
// errs.ErrNotFound if no DAG on the board carries that id (spec.md §4.4).
func (b *Board) TaskByID(id string) (*task.Task, *task.DAG, error) {
	b.mu.RLock()
	dags := append([]*task.DAG(nil), b.dags...)
	b.mu.RUnlock()

	for _, d := range dags {
		if t, ok := d.Tasks()[id]; ok {
			return t, d, nil
		}
	}

	return nil, nil, errs.Wrapf(errs.ErrNotFound, "board: task %q not found", id)
}

// EventInput applies event to the task named taskID per the state machine
// (spec.md §4.4). An event that does not apply to the task's current
// state is logged as a warning and otherwise ignored, matching the
// original source's "absent transitions ignored with warning" behavior;
// it is not treated as a fatal error.
func (b *Board) EventInput(taskID string, event task.Event) error {
	t, dag, err := b.TaskByID(taskID)
	if err != nil {
		return err
	}

	fromTable, ok := transitions[t.State]
	if !ok {
		b.logger.Warn("invalid state transition", "task_id", taskID, "state", string(t.State), "event", string(event))

		return nil
	}
	to, ok := fromTable[event]
	if !ok {
		b.logger.Warn("invalid state transition", "task_id", taskID, "state", string(t.State), "event", string(event))

		return nil
	}

	wasRunning := t.State == task.Running
	t.SetState(to)

	if wasRunning && to == task.Completed {
		b.cascadeEnable(t, dag)
	}

	return nil
}

// cascadeEnable sets every direct successor of t that is not already more
// advanced than Available to Available (spec.md §4.4, §9 open question 1).
func (b *Board) cascadeEnable(t *task.Task, dag *task.DAG) {
	for _, s := range dag.Downstream(t) {
		if stateRank[s.State] <= stateRank[task.Available] {
			s.SetState(task.Available)
		}
	}
}

// GetOpenList returns every task currently Available, optionally filtered
// to those whose requirements caps satisfies (spec.md §4.4). A nil caps
// means unfiltered.
func (b *Board) GetOpenList(caps *capability.Capabilities) []*task.Task {
	var open []*task.Task
	for _, t := range b.Tasks() {
		if !t.InState(task.Available) {
			continue
		}
		if caps != nil && !t.MeetCapabilities(*caps) {
			continue
		}
		open = append(open, t)
	}

	return open
}
