package placement

import "github.com/rapc-project/rapc/internal/topology"

// Partition groups the unassigned executors by the rank (0-based BFS
// position) of their owning component. Executors with no owning
// component, or whose component the walker never reached, fall out as
// systemTasks — the spec's "system tasks not appearing in any component"
// that only get placed in the best-effort second pass.
func Partition(order []topology.Component, td *topology.Details, unassigned []topology.ExecutorID) (ranks [][]topology.ExecutorID, systemTasks []topology.ExecutorID) {
	unassignedSet := make(map[topology.ExecutorID]bool, len(unassigned))
	for _, id := range unassigned {
		unassignedSet[id] = true
	}

	ranks = make([][]topology.ExecutorID, len(order))
	for i, c := range order {
		for _, execID := range c.Execs {
			if unassignedSet[execID] {
				ranks[i] = append(ranks[i], execID)
			}
		}
	}

	placedInRanks := make(map[topology.ExecutorID]bool)
	for _, rank := range ranks {
		for _, execID := range rank {
			placedInRanks[execID] = true
		}
	}
	for _, execID := range unassigned {
		if !placedInRanks[execID] {
			systemTasks = append(systemTasks, execID)
		}
	}

	return ranks, systemTasks
}

// RoundRobin emits executors in a round-robin stream across ranks:
// position 0 of rank 0, position 0 of rank 1, ..., then position 1 of
// rank 0, and so on. Empty rank slots are silently skipped. This is the
// core's load-spreading policy (spec §4.3) — it prevents any single
// component from monopolizing the first-considered, most desirable
// nodes.
func RoundRobin(ranks [][]topology.ExecutorID) []topology.ExecutorID {
	maxLen := 0
	for _, r := range ranks {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}

	var out []topology.ExecutorID
	for pos := 0; pos < maxLen; pos++ {
		for _, r := range ranks {
			if pos < len(r) {
				out = append(out, r[pos])
			}
		}
	}
	return out
}
