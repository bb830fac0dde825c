package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rapc-project/rapc/internal/cluster"
	"github.com/rapc-project/rapc/internal/placement"
	"github.com/rapc-project/rapc/internal/topology"
)

// TableReporter outputs a scheduling Result as a formatted terminal
// table, grouped by worker slot.
type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(_ context.Context, result placement.Result, meta ReportMeta) error {
	ew := &errWriter{w: r.w}

	ew.printf("\n")
	ew.printf("RAPC Placement\n")
	ew.printf("%s\n", strings.Repeat("=", 60))
	ew.printf("Topology:    %s\n", meta.TopologyID)
	ew.printf("Cluster:     %s\n", meta.ClusterID)
	ew.printf("Scheduled:   %s\n", meta.ScheduledAt.Format("2006-01-02 15:04:05"))
	ew.printf("Outcome:     %s\n", outcomeLabel(result))
	if result.Message != "" {
		ew.printf("Summary:     %s\n", result.Message)
	}
	ew.printf("%s\n\n", strings.Repeat("=", 60))

	if len(result.Assignment) == 0 {
		ew.printf("No slots assigned.\n\n")
		return ew.err
	}

	slots := sortedSlots(result.Assignment)

	ew.printf("%-16s %-6s %s\n", "Node", "Port", "Executors")
	ew.printf("%s\n", strings.Repeat("-", 70))
	for _, s := range slots {
		execs := result.Assignment[s]
		ids := make([]string, len(execs))
		for i, e := range execs {
			ids[i] = string(e)
		}
		ew.printf("%-16s %-6d %s\n", s.NodeID, s.Port, strings.Join(ids, ", "))
	}
	ew.printf("\n")

	return ew.err
}

func outcomeLabel(result placement.Result) string {
	if result.Success {
		return "SUCCESS"
	}
	return fmt.Sprintf("FAILED (%s)", result.Status)
}

func sortedSlots(assignment map[cluster.WorkerSlot][]topology.ExecutorID) []cluster.WorkerSlot {
	slots := make([]cluster.WorkerSlot, 0, len(assignment))
	for s := range assignment {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].NodeID != slots[j].NodeID {
			return slots[i].NodeID < slots[j].NodeID
		}
		return slots[i].Port < slots[j].Port
	})
	return slots
}
