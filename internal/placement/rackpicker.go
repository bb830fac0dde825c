package placement

import "github.com/rapc-project/rapc/internal/cluster"

// PickAnchorRack chooses the rack whose nodes have the greatest
// aggregate availCpu+availMem (spec §4.7) — a cheap "fattest rack"
// heuristic, not a dimensionally-consistent measure. Ties go to the
// first rack encountered in State.Racks' (already id-sorted) order.
// Returns false if the cluster has no racks at all.
func PickAnchorRack(state *cluster.State) (cluster.RackID, bool) {
	racks := state.Racks()
	if len(racks) == 0 {
		return "", false
	}

	var best cluster.RackID
	bestSum := -1.0
	found := false

	for _, r := range racks {
		var sum float64
		for _, hostname := range r.Hostnames {
			n, ok := state.NodeByHostname(hostname)
			if !ok {
				continue
			}
			sum += n.AvailCPU + n.AvailMem
		}
		if !found || sum > bestSum {
			best = r.ID
			bestSum = sum
			found = true
		}
	}

	return best, found
}
