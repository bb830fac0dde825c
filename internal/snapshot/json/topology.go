package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rapc-project/rapc/internal/topology"
)

// ComponentDoc is the on-disk shape of one topology component.
type ComponentDoc struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // "SOURCE" or "PROCESSOR"
	Execs    []string `json:"execs"`
	Parents  []string `json:"parents"`
	Children []string `json:"children"`
}

// ExecutorDoc is the on-disk shape of one executor's demand.
type ExecutorDoc struct {
	ID     string  `json:"id"`
	CPUReq float64 `json:"cpu_req"`
	MemReq float64 `json:"mem_req"`
}

// TopologyDoc is the on-disk shape of a TopologyDetails snapshot. Execs
// listed here but not owned by any component are the spec's "system
// tasks".
type TopologyDoc struct {
	ID               string         `json:"id"`
	PerWorkerMaxHeap float64        `json:"per_worker_max_heap"`
	Components       []ComponentDoc `json:"components"`
	Executors        []ExecutorDoc  `json:"executors"`
}

// LoadTopology reads a TopologyDoc from path and builds a topology.Details.
func LoadTopology(path string) (*topology.Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}

	var doc TopologyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology: %w", err)
	}

	components := make([]topology.Component, 0, len(doc.Components))
	for _, cd := range doc.Components {
		c := topology.Component{
			ID:       cd.ID,
			Type:     componentType(cd.Type),
			Parents:  cd.Parents,
			Children: cd.Children,
		}
		for _, e := range cd.Execs {
			c.Execs = append(c.Execs, topology.ExecutorID(e))
		}
		components = append(components, c)
	}

	td := topology.New(doc.ID, doc.PerWorkerMaxHeap, components)
	for _, ed := range doc.Executors {
		td.AddExecutor(topology.Executor{
			ID:     topology.ExecutorID(ed.ID),
			CPUReq: ed.CPUReq,
			MemReq: ed.MemReq,
		})
	}

	return td, nil
}

func componentType(s string) topology.ComponentType {
	if s == "SOURCE" {
		return topology.Source
	}
	return topology.Processor
}
