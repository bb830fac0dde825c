package placement

import "github.com/rapc-project/rapc/internal/cluster"

// SelectSlot iterates ranked nodes in order, and within each node its
// free slots sorted by port, returning the first slot whose already-
// assigned memory plus t's demand still fits under maxHeap (spec §4.5).
// Only memory is checked at slot granularity — CPU is accounted only at
// the node level, since the per-worker heap cap is the binding per-slot
// resource.
func SelectSlot(rankedNodes []*cluster.Node, t task, maxHeap float64, slotMemUsed map[cluster.WorkerSlot]float64) (*cluster.Node, cluster.WorkerSlot, bool) {
	for _, n := range rankedNodes {
		for _, s := range n.FreeSlots() {
			used := slotMemUsed[s]
			if maxHeap-used >= t.memReq {
				return n, s, true
			}
		}
	}
	return nil, cluster.WorkerSlot{}, false
}
