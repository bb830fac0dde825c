package placement

import (
	"reflect"
	"testing"

	"github.com/rapc-project/rapc/internal/topology"
)

func TestPartition_SystemTasksFallOut(t *testing.T) {
	order := []topology.Component{
		{ID: "a", Execs: []topology.ExecutorID{"a1"}},
	}
	td := topology.New("t1", 1024, order)

	unassigned := []topology.ExecutorID{"a1", "orphan"}
	ranks, systemTasks := Partition(order, td, unassigned)

	if len(ranks) != 1 || len(ranks[0]) != 1 || ranks[0][0] != "a1" {
		t.Fatalf("unexpected ranks: %v", ranks)
	}
	if len(systemTasks) != 1 || systemTasks[0] != "orphan" {
		t.Fatalf("unexpected systemTasks: %v", systemTasks)
	}
}

func TestRoundRobin_InterleavesAcrossRanks(t *testing.T) {
	ranks := [][]topology.ExecutorID{
		{"a1", "a2"},
		{"b1", "b2"},
	}
	got := RoundRobin(ranks)
	want := []topology.ExecutorID{"a1", "b1", "a2", "b2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRoundRobin_UnevenRanksSkipExhausted(t *testing.T) {
	ranks := [][]topology.ExecutorID{
		{"a1"},
		{"b1", "b2", "b3"},
	}
	got := RoundRobin(ranks)
	want := []topology.ExecutorID{"a1", "b1", "b2", "b3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
