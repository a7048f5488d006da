package board

import (
	"github.com/VeBaS-UAV/mamoge-taskplanner/capability"
	"github.com/VeBaS-UAV/mamoge-taskplanner/task"
)

// GetTasklists enumerates DAG paths from every open (Available) task
// (spec.md §4.4: get_tasklists). With no capabilities it returns every
// path from an open task to a sink; with capabilities it
// truncates each path at the last prefix whose summed requirements still
// satisfy caps, grounded on the original source's dag_paths and
// dag_paths_w_capabilities DFS.
func (b *Board) GetTasklists(caps *capability.Capabilities) [][]*task.Task {
	start := b.GetOpenList(nil)

	var all [][]*task.Task
	for _, t := range start {
		_, dag, err := b.TaskByID(t.ID)
		if err != nil {
			continue
		}
		all = append(all, dagPaths(dag, []*task.Task{t}, caps)...)
	}

	return all
}

// dagPaths performs the DFS path enumeration nx_utils.py's dag_paths /
// dag_paths_w_capabilities implement: extend path along every downstream
// edge, yielding the full path at a sink; when caps is non-nil, stop
// extending (and drop the failing task from the yielded path) as soon as
// the path's summed requirements cease to be satisfied.
func dagPaths(dag *task.DAG, path []*task.Task, caps *capability.Capabilities) [][]*task.Task {
	cur := path[len(path)-1]

	if caps != nil {
		req := sumRequirements(path)
		if !caps.Satisfy(req) {
			return [][]*task.Task{path[:len(path)-1]}
		}
	}

	succs := dag.Downstream(cur)
	if len(succs) == 0 {
		return [][]*task.Task{path}
	}

	var out [][]*task.Task
	for _, next := range succs {
		extended := make([]*task.Task, len(path)+1)
		copy(extended, path)
		extended[len(path)] = next
		out = append(out, dagPaths(dag, extended, caps)...)
	}

	return out
}

// sumRequirements accumulates the requirements of every task in path,
// matching the original source's sum_requirements.
func sumRequirements(path []*task.Task) capability.Requirements {
	sum, _ := capability.NewRequirements()
	for _, t := range path {
		_ = sum.AddAll(t.Requirements)
	}

	return sum
}

// GetSubgraph returns the induced DAG subgraph over the union of tasks
// appearing in GetTasklists(caps) (spec.md §4.4: get_subgraph). Tasks are
// grouped by their owning DAG; one subgraph DAG is returned per owning
// DAG that contributed at least one task, preserving only the precedence
// edges between tasks both ends of which survived truncation.
func (b *Board) GetSubgraph(caps *capability.Capabilities) []*task.DAG {
	tasklists := b.GetTasklists(caps)

	included := make(map[string]*task.Task)
	for _, path := range tasklists {
		for _, t := range path {
			included[t.ID] = t
		}
	}

	byDAG := make(map[*task.DAG][]*task.Task)
	for _, t := range included {
		if _, dag, err := b.TaskByID(t.ID); err == nil {
			byDAG[dag] = append(byDAG[dag], t)
		}
	}

	var subgraphs []*task.DAG
	for dag, tasks := range byDAG {
		sub := task.NewDAG(dag.Name)
		inSub := make(map[string]*task.Task, len(tasks))
		for _, t := range tasks {
			clone := *t
			inSub[t.LocalID] = &clone
		}
		for _, t := range tasks {
			localClone := inSub[t.LocalID]
			localClone.ID = t.LocalID // reset so AddTask's rewrite reproduces the original id
			_ = sub.AddTask(localClone)
		}
		for _, t := range tasks {
			for _, s := range dag.Downstream(t) {
				if downClone, ok := inSub[s.LocalID]; ok {
					upClone := inSub[t.LocalID]
					_ = sub.SetDownstream(upClone, downClone)
				}
			}
		}
		subgraphs = append(subgraphs, sub)
	}

	return subgraphs
}
