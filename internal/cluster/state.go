package cluster

import (
	"fmt"
	"sort"

	"github.com/rapc-project/rapc/internal/topology"
)

// Logger is the minimal logging seam the Cluster View uses to report
// anomalies (spec §4.1, §7: "logged anomaly but not fatal"). A nil Logger
// is a no-op.
type Logger func(format string, args ...interface{})

func (l Logger) logf(format string, args ...interface{}) {
	if l != nil {
		l(format, args...)
	}
}

// State is a read/mutate wrapper over a cluster snapshot: the Cluster
// View of spec §4.1. It exclusively owns mutable Node state for the
// duration of one scheduling call.
type State struct {
	nodes              map[NodeID]*Node
	hostnameToNode     map[string]NodeID
	networkTopography  map[RackID][]string // rackID -> ordered hostnames
	hostnameToRack     map[string]RackID
	unassignedByTopo   map[string][]topology.ExecutorID

	log Logger
}

// NewState builds a Cluster View from nodes and a rack topology. Hostname
// lookups and rack membership are indexed once up front.
func NewState(nodes []*Node, networkTopography map[RackID][]string, log Logger) *State {
	s := &State{
		nodes:             make(map[NodeID]*Node, len(nodes)),
		hostnameToNode:    make(map[string]NodeID, len(nodes)),
		networkTopography: networkTopography,
		hostnameToRack:    make(map[string]RackID),
		unassignedByTopo:  make(map[string][]topology.ExecutorID),
		log:               log,
	}
	for _, n := range nodes {
		s.nodes[n.ID] = n
		s.hostnameToNode[n.Hostname] = n.ID
	}
	for rackID, hostnames := range networkTopography {
		for _, h := range hostnames {
			s.hostnameToRack[h] = rackID
		}
	}
	return s
}

// SetUnassignedExecutors records which executors of a topology are still
// awaiting placement. The core treats this as the sole source of
// "eligible for placement" (spec §3 invariant).
func (s *State) SetUnassignedExecutors(topologyID string, execs []topology.ExecutorID) {
	s.unassignedByTopo[topologyID] = execs
}

// UnassignedExecutors returns the executors of topologyID still awaiting
// placement.
func (s *State) UnassignedExecutors(topologyID string) []topology.ExecutorID {
	return s.unassignedByTopo[topologyID]
}

// NodeByID looks up a node by its id.
func (s *State) NodeByID(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NodeByHostname looks up a node by hostname. A miss is a logged anomaly,
// not a fatal error (spec §4.1): callers treat it as "skip".
func (s *State) NodeByHostname(hostname string) (*Node, bool) {
	id, ok := s.hostnameToNode[hostname]
	if !ok {
		s.log.logf("cluster: hostname %q has no known node id", hostname)
		return nil, false
	}
	return s.NodeByID(id)
}

// RackOf returns the rack containing n's hostname. A node outside any
// rack is a logged anomaly (spec §4.4: "treated as distance 1.0").
func (s *State) RackOf(n *Node) (RackID, bool) {
	rackID, ok := s.hostnameToRack[n.Hostname]
	if !ok {
		s.log.logf("cluster: node %q (hostname %q) is not a member of any rack", n.ID, n.Hostname)
		return "", false
	}
	return rackID, true
}

// Racks returns all racks, sorted by id for deterministic iteration
// (spec §5).
func (s *State) Racks() []Rack {
	ids := make([]RackID, 0, len(s.networkTopography))
	for id := range s.networkTopography {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Rack, 0, len(ids))
	for _, id := range ids {
		out = append(out, Rack{ID: id, Hostnames: s.networkTopography[id]})
	}
	return out
}

// FreeNodes returns all nodes with at least one free slot, sorted by id
// (spec §5's stabilized node iteration order).
func (s *State) FreeNodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.HasFreeSlot() {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllNodes returns every node regardless of free-slot state, sorted by id.
func (s *State) AllNodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ErrNegativeResource is a contract violation: Consume was asked to take
// more than a node has available.
var ErrNegativeResource = fmt.Errorf("cluster: consume would drive node availability negative")

// Consume atomically decrements a node's available CPU/mem and, once slot
// has taken on enough executors that no further placement could fit under
// the caller-tracked heap budget, removes it from the node's free set.
// Whether the slot is full (slotNowFull) is the caller's decision (the
// ledger's heap-budget bookkeeping), not this method's — Consume only
// ever removes the slot when told to, keeping co-location (multiple executors per slot) possible
// per spec §9's resolved open question.
func (n *Node) Consume(cpu, mem float64, slot WorkerSlot, slotNowFull bool) error {
	if cpu > n.AvailCPU || mem > n.AvailMem {
		return ErrNegativeResource
	}
	n.AvailCPU -= cpu
	n.AvailMem -= mem
	if slotNowFull {
		n.removeSlot(slot.Port)
	}
	return nil
}
