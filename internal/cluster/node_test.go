package cluster

import "testing"

func TestNewNode_AvailStartsAtTotal(t *testing.T) {
	n := NewNode("n1", "host-1", 8, 16384, []int{6700, 6701})
	if n.AvailCPU != n.TotalCPU || n.AvailMem != n.TotalMem {
		t.Fatalf("avail should start equal to total: %+v", n)
	}
	if !n.HasFreeSlot() {
		t.Error("expected free slots")
	}
}

func TestNode_FreeSlots_SortedByPort(t *testing.T) {
	n := NewNode("n1", "host-1", 8, 16384, []int{6702, 6700, 6701})
	slots := n.FreeSlots()
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1].Port >= slots[i].Port {
			t.Errorf("slots not sorted: %v", slots)
		}
	}
}

func TestNode_Consume_RemovesSlotWhenFull(t *testing.T) {
	n := NewNode("n1", "host-1", 8, 1024, []int{6700})
	slot := WorkerSlot{NodeID: "n1", Port: 6700}

	if err := n.Consume(2, 1024, slot, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.HasFreeSlot() {
		t.Error("slot should have been removed once full")
	}
	if n.AvailCPU != 6 || n.AvailMem != 0 {
		t.Errorf("unexpected avail after consume: cpu=%v mem=%v", n.AvailCPU, n.AvailMem)
	}
}

func TestNode_Consume_KeepsSlotWhenNotFull(t *testing.T) {
	n := NewNode("n1", "host-1", 8, 1024, []int{6700})
	slot := WorkerSlot{NodeID: "n1", Port: 6700}

	if err := n.Consume(2, 256, slot, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.HasFreeSlot() {
		t.Error("slot should remain free")
	}
}

func TestNode_Consume_RejectsNegativeResult(t *testing.T) {
	n := NewNode("n1", "host-1", 1, 128, []int{6700})
	slot := WorkerSlot{NodeID: "n1", Port: 6700}

	if err := n.Consume(2, 0, slot, false); err != ErrNegativeResource {
		t.Errorf("expected ErrNegativeResource, got %v", err)
	}
}
