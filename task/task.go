// Package task defines the Task and DAG model (spec.md §4.3): tasks
// carrying state, requirements, and a location; DAGs of tasks joined by
// precedence edges.
//
// Grounded on the teacher library's core.Vertex/core.Graph shape (plain
// data struct, owning Graph tracks identity and locking) and on the
// original Python source's mamoge/models/tasks.py and
// mamoge/taskplanner/dag.py for the exact id-rewriting and traversal
// semantics.
package task

import (
	"time"

	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
	"github.com/VeBaS-UAV/mamoge-taskplanner/location"
	"github.com/VeBaS-UAV/mamoge-taskplanner/planlog"
)

// State is a Task's position in the closed state machine spec.md §4.4
// defines (UNDEFINED is initial; COMPLETED and FAILURE are terminal
// unless reset via RESOLVED).
type State string

const (
	Undefined State = "UNDEFINED"
	Available State = "AVAILABLE"
	Planned   State = "PLANNED"
	Queued    State = "QUEUED"
	Running   State = "RUNNING"
	Completed State = "COMPLETED"
	Failure   State = "FAILURE"
)

// Event drives transitions in the Task state machine (spec.md §4.4).
type Event string

const (
	Plan     Event = "PLAN"
	Accept   Event = "ACCEPT"
	Start    Event = "START"
	Done     Event = "COMPLETED"
	Error    Event = "ERROR"
	Resolved Event = "RESOLVED"
)

// TimeWindow is an optional scheduling constraint on a Task (spec.md §3).
type TimeWindow struct {
	Start, End time.Duration
}

// Task is a unit of work: an id unique within its owning Board (formed by
// prefixing the owning DAG's id), a name, a state, a set of capability
// requirements, a location, and an optional time window.
type Task struct {
	ID           string
	LocalID      string
	Name         string
	State        State
	Requirements capability.Requirements
	Location     location.Location
	TimeWindow   *TimeWindow

	logger planlog.Logger
}

// NewTask returns a Task in state Undefined. id doubles as the initial
// LocalID until a DAG rewrites it (spec.md §4.3: add_task rewrites
// t.id ← dag.id + "/" + local_id).
func NewTask(id, name string, reqs capability.Requirements) *Task {
	return &Task{
		ID:           id,
		LocalID:      id,
		Name:         name,
		State:        Undefined,
		Requirements: reqs,
		Location:     location.Zero{},
		logger:       planlog.Noop(),
	}
}

// WithLogger attaches a logger to log state transitions through; the zero
// value logs nowhere (planlog.Noop).
func (t *Task) WithLogger(l planlog.Logger) *Task {
	t.logger = l

	return t
}

// SetState logs the transition, then assigns (spec.md §4.3:
// Task.set_state logs transition, then assigns).
func (t *Task) SetState(s State) {
	if t.logger == nil {
		t.logger = planlog.Noop()
	}
	t.logger.Debug("task state change", "task_id", t.ID, "from", string(t.State), "to", string(s))
	t.State = s
}

// MeetCapabilities reports whether caps satisfies t's requirements
// (spec.md §4.3: Task.meet_capabilities(C) ≡ requirements.meet(C)).
func (t *Task) MeetCapabilities(caps capability.Capabilities) bool {
	return t.Requirements.Meet(caps)
}

// InState reports whether t is currently in state s.
func (t *Task) InState(s State) bool {
	return t.State == s
}

// NewSyncPoint returns a TaskSyncPoint: a Task with empty requirements and
// a Zero location, existing solely to join independent branches in a DAG
// (spec.md §3).
func NewSyncPoint(id, name string) *Task {
	empty, _ := capability.NewRequirements()

	return NewTask(id, name, empty)
}

// ToDict renders t as {id, local_id, name, state, requirements}, matching
// the original source's Task.to_dict() (spec.md §4.3).
func (t *Task) ToDict() map[string]any {
	return map[string]any{
		"id":           t.ID,
		"local_id":     t.LocalID,
		"name":         t.Name,
		"state":        string(t.State),
		"requirements": t.Requirements.ToDict(),
	}
}

// FromDict reconstructs a Task from its ToDict form.
func FromDict(d map[string]any) (*Task, error) {
	reqsRaw, _ := d["requirements"].(map[string]any)
	reqs, err := capability.RequirementsFromDict(reqsRaw)
	if err != nil {
		return nil, err
	}

	id, _ := d["id"].(string)
	localID, _ := d["local_id"].(string)
	name, _ := d["name"].(string)
	state, _ := d["state"].(string)

	t := NewTask(id, name, reqs)
	t.LocalID = localID
	t.State = State(state)

	return t, nil
}
