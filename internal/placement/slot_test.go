package placement

import (
	"testing"

	"github.com/rapc-project/rapc/internal/cluster"
)

func TestSelectSlot_HeapCapForcesSecondSlot(t *testing.T) {
	n := cluster.NewNode("n1", "host-1", 4, 16, []int{6700, 6701})
	t1 := task{id: "e1", cpuReq: 1, memReq: 2}
	maxHeap := 4.0
	slotMemUsed := map[cluster.WorkerSlot]float64{}

	slotA := cluster.WorkerSlot{NodeID: "n1", Port: 6700}

	node, slot, ok := SelectSlot([]*cluster.Node{n}, t1, maxHeap, slotMemUsed)
	if !ok || slot != slotA || node.ID != "n1" {
		t.Fatalf("expected first placement on 6700, got %v %v %v", node, slot, ok)
	}
	slotMemUsed[slotA] += t1.memReq

	node, slot, ok = SelectSlot([]*cluster.Node{n}, t1, maxHeap, slotMemUsed)
	if !ok || slot != slotA {
		t.Fatalf("expected second placement still on 6700 (2 of 4 committed), got %v %v %v", node, slot, ok)
	}
	slotMemUsed[slotA] += t1.memReq

	// 6700 now has 4GB committed against a 4GB cap; the third executor
	// must land on 6701, the next port in order.
	slotB := cluster.WorkerSlot{NodeID: "n1", Port: 6701}
	node, slot, ok = SelectSlot([]*cluster.Node{n}, t1, maxHeap, slotMemUsed)
	if !ok || slot != slotB {
		t.Fatalf("expected third placement on 6701, got %v %v %v", node, slot, ok)
	}
}

func TestSelectSlot_NoCandidateFits(t *testing.T) {
	n := cluster.NewNode("n1", "host-1", 4, 4, []int{6700})
	t1 := task{id: "e1", cpuReq: 1, memReq: 8}

	_, _, ok := SelectSlot([]*cluster.Node{n}, t1, 4, map[cluster.WorkerSlot]float64{})
	if ok {
		t.Fatal("expected no slot to fit a demand larger than the heap cap")
	}
}
