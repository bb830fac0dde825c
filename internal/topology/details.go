package topology

import "fmt"

// ErrUnknownExecutor signals a contract violation: an executor id was
// referenced that the topology does not know about.
type ErrUnknownExecutor ExecutorID

func (e ErrUnknownExecutor) Error() string {
	return fmt.Sprintf("topology: unknown executor %q", ExecutorID(e))
}

// Details is the read-only view of one topology's structure and demand.
// It is immutable for the lifetime of a scheduling call.
type Details struct {
	ID string

	components         map[string]Component
	executors          map[ExecutorID]Executor
	executorToComponent map[ExecutorID]string
	perWorkerMaxHeap   float64

	// componentOrder preserves the order components were declared in, so
	// source-component iteration order (used by the walker's tie-break)
	// is deterministic regardless of map iteration.
	componentOrder []string
}

// New builds a Details view from components and their executors. Executors
// not attached to any component (system tasks) are registered with
// AddExecutor after construction, like every other executor.
func New(id string, perWorkerMaxHeap float64, components []Component) *Details {
	d := &Details{
		ID:                  id,
		components:          make(map[string]Component, len(components)),
		executors:           make(map[ExecutorID]Executor),
		executorToComponent: make(map[ExecutorID]string),
		perWorkerMaxHeap:    perWorkerMaxHeap,
		componentOrder:      make([]string, 0, len(components)),
	}
	for _, c := range components {
		d.components[c.ID] = c
		d.componentOrder = append(d.componentOrder, c.ID)
		for _, execID := range c.Execs {
			d.executorToComponent[execID] = c.ID
		}
	}
	return d
}

// AddExecutor registers an executor's resource demand. Components
// reference executors by id; this is what resolves that id to a demand.
func (d *Details) AddExecutor(e Executor) {
	d.executors[e.ID] = e
}

// Component returns the component by id and whether it was found.
func (d *Details) Component(id string) (Component, bool) {
	c, ok := d.components[id]
	return c, ok
}

// Components returns all components in declaration order.
func (d *Details) Components() []Component {
	out := make([]Component, 0, len(d.componentOrder))
	for _, id := range d.componentOrder {
		out = append(out, d.components[id])
	}
	return out
}

// ComponentOf returns the id of the component owning execID, and false if
// execID is a system task with no owning component.
func (d *Details) ComponentOf(execID ExecutorID) (string, bool) {
	id, ok := d.executorToComponent[execID]
	return id, ok
}

// Executor resolves an executor id to its full record.
func (d *Details) Executor(id ExecutorID) (Executor, bool) {
	e, ok := d.executors[id]
	return e, ok
}

// TotalCPUReqTask returns the CPU demand of the given executor.
func (d *Details) TotalCPUReqTask(id ExecutorID) (float64, error) {
	e, ok := d.executors[id]
	if !ok {
		return 0, ErrUnknownExecutor(id)
	}
	return e.CPUReq, nil
}

// TotalMemReqTask returns the memory demand of the given executor.
func (d *Details) TotalMemReqTask(id ExecutorID) (float64, error) {
	e, ok := d.executors[id]
	if !ok {
		return 0, ErrUnknownExecutor(id)
	}
	return e.MemReq, nil
}

// TopologyWorkerMaxHeapSize returns the per-worker-slot heap budget.
func (d *Details) TopologyWorkerMaxHeapSize() float64 {
	return d.perWorkerMaxHeap
}

// SourceComponents returns the components of type Source, in declaration
// order — the walker's BFS seed set.
func (d *Details) SourceComponents() []Component {
	var out []Component
	for _, id := range d.componentOrder {
		c := d.components[id]
		if c.Type == Source {
			out = append(out, c)
		}
	}
	return out
}
