package placement

import (
	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/topology"
)

// ledger is the Assignment Ledger (spec §4.6): it owns the growing
// assignment, the per-slot memory already committed, the reference node,
// and the set of executors that could not be placed. Reference-node
// state is deliberately kept here as explicit state threaded through one
// scheduling call, not a package-level global, so the core stays
// re-entrant per call (spec §9 design note).
type ledger struct {
	assignment  map[cluster.WorkerSlot][]topology.ExecutorID
	slotMemUsed map[cluster.WorkerSlot]float64
	refNode     *cluster.Node
	unplaced    []topology.ExecutorID
}

func newLedger() *ledger {
	return &ledger{
		assignment:  make(map[cluster.WorkerSlot][]topology.ExecutorID),
		slotMemUsed: make(map[cluster.WorkerSlot]float64),
	}
}

// place records t on slot s of node n, consumes n's resources, and
// advances refNode to n. The slot is dropped from the node's free set
// only once its committed memory leaves no headroom at all — a pure
// optimization, since SelectSlot already re-checks the heap budget on
// every call regardless of free-set membership.
func (l *ledger) place(n *cluster.Node, s cluster.WorkerSlot, t task, maxHeap float64) error {
	l.assignment[s] = append(l.assignment[s], t.id)
	l.slotMemUsed[s] += t.memReq

	slotNowFull := maxHeap-l.slotMemUsed[s] <= 0
	if err := n.Consume(t.cpuReq, t.memReq, s, slotNowFull); err != nil {
		return err
	}
	l.refNode = n
	return nil
}

func (l *ledger) markUnplaced(id topology.ExecutorID) {
	l.unplaced = append(l.unplaced, id)
}
