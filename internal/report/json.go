package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rapc-project/rapc/internal/placement"
)

// JSONReporter outputs a scheduling Result as JSON.
type JSONReporter struct {
	w io.Writer
}

type slotAssignment struct {
	NodeID    string   `json:"node_id"`
	Port      int      `json:"port"`
	Executors []string `json:"executors"`
}

type jsonOutput struct {
	Meta        ReportMeta       `json:"meta"`
	Success     bool             `json:"success"`
	Status      string           `json:"status,omitempty"`
	Message     string           `json:"message"`
	Assignments []slotAssignment `json:"assignments"`
}

func (r *JSONReporter) Report(_ context.Context, result placement.Result, meta ReportMeta) error {
	slots := sortedSlots(result.Assignment)
	assignments := make([]slotAssignment, 0, len(slots))
	for _, s := range slots {
		execs := result.Assignment[s]
		ids := make([]string, len(execs))
		for i, e := range execs {
			ids[i] = string(e)
		}
		assignments = append(assignments, slotAssignment{
			NodeID:    string(s.NodeID),
			Port:      s.Port,
			Executors: ids,
		})
	}

	output := jsonOutput{
		Meta:        meta,
		Success:     result.Success,
		Status:      string(result.Status),
		Message:     result.Message,
		Assignments: assignments,
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
