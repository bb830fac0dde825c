// Package json loads and saves the scheduler's input/output documents —
// cluster and topology snapshots — as plain JSON files, the same
// read-from-file pattern the teacher's cmd/simulate.go uses for
// model.ClusterState.
package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/topology"
)

// NodeDoc is the on-disk shape of one cluster node.
type NodeDoc struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	TotalCPU float64 `json:"total_cpu"`
	TotalMem float64 `json:"total_mem"`
	Ports    []int   `json:"ports"`
}

// ClusterStateDoc is the on-disk shape of a ClusterState snapshot:
// nodes, the rack topology, and the unassigned executors per topology
// (spec §6's consumed ClusterState view).
type ClusterStateDoc struct {
	Nodes              []NodeDoc                     `json:"nodes"`
	NetworkTopography  map[string][]string            `json:"network_topography"`
	UnassignedByTopology map[string][]string          `json:"unassigned_by_topology"`
}

// LoadClusterState reads a ClusterStateDoc from path and builds a live
// cluster.State from it.
func LoadClusterState(path string, log cluster.Logger) (*cluster.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cluster state file: %w", err)
	}

	var doc ClusterStateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cluster state: %w", err)
	}

	nodes := make([]*cluster.Node, 0, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		nodes = append(nodes, cluster.NewNode(cluster.NodeID(nd.ID), nd.Hostname, nd.TotalCPU, nd.TotalMem, nd.Ports))
	}

	topography := make(map[cluster.RackID][]string, len(doc.NetworkTopography))
	for rackID, hostnames := range doc.NetworkTopography {
		topography[cluster.RackID(rackID)] = hostnames
	}

	state := cluster.NewState(nodes, topography, log)
	for topoID, execIDs := range doc.UnassignedByTopology {
		ids := make([]topology.ExecutorID, 0, len(execIDs))
		for _, id := range execIDs {
			ids = append(ids, topology.ExecutorID(id))
		}
		state.SetUnassignedExecutors(topoID, ids)
	}

	return state, nil
}

// SaveClusterState serializes a ClusterStateDoc to path, used by `inspect`
// to round-trip a live-discovered snapshot for later offline scheduling.
func SaveClusterState(path string, doc ClusterStateDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cluster state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing cluster state file: %w", err)
	}
	return nil
}
