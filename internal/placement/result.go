package placement

import (
	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/topology"
)

// Result is the tagged union a scheduling call emits (spec §6): either a
// full Assignment with a human-readable Message, or a Failure carrying a
// Status and diagnostic Message. Assignment is nil on failure — a partial
// assignment is never returned (spec §7: "the caller receives no
// assignment").
type Result struct {
	Success    bool
	Assignment map[cluster.WorkerSlot][]topology.ExecutorID
	Status     Status // zero value on success
	Message    string
	Unplaced   int // executors left without a slot; 0 on success
}
