package placement

import (
	"fmt"
	"sort"

	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/topology"
)

// Schedule runs the full placement algorithm of spec §4.8 against one
// topology's unassigned executors. It returns an error only for contract
// violations (an executor referenced by the topology but never
// registered with a demand) — every other failure mode is reported
// through Result, per spec §7's taxonomy.
func Schedule(state *cluster.State, td *topology.Details, opts Options) (Result, error) {
	unassigned := state.UnassignedExecutors(td.ID)
	total := len(unassigned)

	if total == 0 {
		return Result{
			Success:    true,
			Assignment: map[cluster.WorkerSlot][]topology.ExecutorID{},
			Message:    "0/0 executors scheduled",
		}, nil
	}

	if len(state.FreeNodes()) == 0 {
		return Result{
			Success:  false,
			Status:   FailNotEnoughResources,
			Message:  fmt.Sprintf("0/%d executors scheduled", total),
			Unplaced: total,
		}, nil
	}

	order, err := BuildOrder(td)
	if err != nil {
		return Result{
			Success:  false,
			Status:   FailInvalidTopology,
			Message:  err.Error(),
			Unplaced: total,
		}, nil
	}

	ranks, systemTasks := Partition(order, td, unassigned)
	stream := RoundRobin(ranks)

	l := newLedger()
	var anchorRack *cluster.RackID

	placeOne := func(execID topology.ExecutorID) error {
		t, err := resolveTask(td, execID)
		if err != nil {
			return err
		}

		if l.refNode == nil && anchorRack == nil {
			if rackID, ok := PickAnchorRack(state); ok {
				anchorRack = &rackID
			}
		}

		candidates := state.FreeNodes()
		ranked := Rank(candidates, state, t, l.refNode, anchorRack, opts)
		node, slot, ok := SelectSlot(ranked, t, td.TopologyWorkerMaxHeapSize(), l.slotMemUsed)
		if !ok {
			l.markUnplaced(execID)
			return nil
		}
		return l.place(node, slot, t, td.TopologyWorkerMaxHeapSize())
	}

	for _, execID := range stream {
		if err := placeOne(execID); err != nil {
			return Result{}, err
		}
	}

	leftover := append([]topology.ExecutorID{}, l.unplaced...)
	leftover = append(leftover, systemTasks...)
	sort.Slice(leftover, func(i, j int) bool { return leftover[i] < leftover[j] })
	l.unplaced = nil

	for _, execID := range leftover {
		if err := placeOne(execID); err != nil {
			return Result{}, err
		}
	}

	placed := total - len(l.unplaced)
	if len(l.unplaced) > 0 {
		return Result{
			Success:  false,
			Status:   FailNotEnoughResources,
			Message:  fmt.Sprintf("%d/%d executors scheduled", placed, total),
			Unplaced: len(l.unplaced),
		}, nil
	}

	return Result{
		Success:    true,
		Assignment: l.assignment,
		Message:    fmt.Sprintf("%d/%d executors scheduled", total, total),
	}, nil
}

func resolveTask(td *topology.Details, execID topology.ExecutorID) (task, error) {
	cpu, err := td.TotalCPUReqTask(execID)
	if err != nil {
		return task{}, err
	}
	mem, err := td.TotalMemReqTask(execID)
	if err != nil {
		return task{}, err
	}
	return task{id: execID, cpuReq: cpu, memReq: mem}, nil
}
