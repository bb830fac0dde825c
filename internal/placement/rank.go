package placement

import (
	"math"
	"sort"

	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/topology"
)

// task bundles the demand of one executor, resolved once per placement
// step so the ranker and slot selector never re-query the topology view.
type task struct {
	id     topology.ExecutorID
	cpuReq float64
	memReq float64
}

// Rank orders candidate nodes by ascending composite distance (spec
// §4.4). Eligible nodes are those with a free slot and enough available
// CPU/mem for t. Before the first successful placement (refNode == nil),
// candidates are narrowed to anchorRack and the network term is zero;
// afterward all racks are considered and the network term is weighted
// by topoDist to refNode. Ties are broken by node id.
func Rank(nodes []*cluster.Node, state *cluster.State, t task, refNode *cluster.Node, anchorRack *cluster.RackID, w Options) []*cluster.Node {
	type scored struct {
		node *cluster.Node
		dist float64
	}

	var candidates []scored
	for _, n := range nodes {
		if !n.HasFreeSlot() {
			continue
		}
		if t.cpuReq > n.AvailCPU || t.memReq > n.AvailMem {
			continue
		}
		if refNode == nil && anchorRack != nil {
			rackID, ok := state.RackOf(n)
			if !ok || rackID != *anchorRack {
				continue
			}
		}
		candidates = append(candidates, scored{node: n, dist: distance(n, state, t, refNode, w)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].node.ID < candidates[j].node.ID
	})

	out := make([]*cluster.Node, len(candidates))
	for i, c := range candidates {
		out[i] = c.node
	}
	return out
}

// distance computes sqrt(a²+b²+c²) for node n against task t. a and b
// are the fraction of t's demand that n's headroom still represents
// after placement — close to 0 for a roomy node, approaching 1 as a
// node's remaining capacity gets tight — so a spread policy falls out of
// ranking candidates by ascending distance.
func distance(n *cluster.Node, state *cluster.State, t task, refNode *cluster.Node, w Options) float64 {
	a := (t.cpuReq / (n.AvailCPU + 1)) * w.CPUWeight
	b := (t.memReq / (n.AvailMem + 1)) * w.MemWeight

	var c float64
	if refNode != nil {
		c = topoDist(refNode, n, state) * w.NetworkWeight
	}

	return math.Sqrt(a*a + b*b + c*c)
}

// topoDist is 0.0 for the same node, 0.5 for the same rack, 1.0
// otherwise. Either node's rack being unidentifiable also yields 1.0
// (logged as an anomaly by Cluster View's RackOf).
func topoDist(u, v *cluster.Node, state *cluster.State) float64 {
	if u.ID == v.ID {
		return 0.0
	}
	rackU, okU := state.RackOf(u)
	rackV, okV := state.RackOf(v)
	if !okU || !okV {
		return 1.0
	}
	if rackU == rackV {
		return 0.5
	}
	return 1.0
}
