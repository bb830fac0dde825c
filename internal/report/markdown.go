package report

import (
	"context"
	"io"
	"strings"

	"github.com/rapc-project/rapc/internal/placement"
)

// MarkdownReporter outputs a scheduling Result as a Markdown table,
// suitable for pasting into a PR description or runbook.
type MarkdownReporter struct {
	w io.Writer
}

func (r *MarkdownReporter) Report(_ context.Context, result placement.Result, meta ReportMeta) error {
	ew := &errWriter{w: r.w}

	ew.printf("## RAPC Placement: %s\n\n", meta.TopologyID)
	ew.printf("- Cluster: `%s`\n", meta.ClusterID)
	ew.printf("- Scheduled: %s\n", meta.ScheduledAt.Format("2006-01-02 15:04:05"))
	ew.printf("- Outcome: **%s**\n", outcomeLabel(result))
	if result.Message != "" {
		ew.printf("- Summary: %s\n", result.Message)
	}
	ew.printf("\n")

	slots := sortedSlots(result.Assignment)
	if len(slots) == 0 {
		ew.printf("_No slots assigned._\n")
		return ew.err
	}

	ew.printf("| Node | Port | Executors |\n")
	ew.printf("|---|---|---|\n")
	for _, s := range slots {
		execs := result.Assignment[s]
		ids := make([]string, len(execs))
		for i, e := range execs {
			ids[i] = string(e)
		}
		ew.printf("| %s | %d | %s |\n", s.NodeID, s.Port, strings.Join(ids, ", "))
	}

	return ew.err
}
