package report

import (
	"context"
	"io"
	"time"

	"github.com/rapc-project/rapc/internal/placement"
)

// Reporter formats and writes a scheduling Result to an output
// destination.
type Reporter interface {
	Report(ctx context.Context, result placement.Result, meta ReportMeta) error
}

// ReportMeta contains contextual metadata for the report.
type ReportMeta struct {
	TopologyID  string
	ClusterID   string
	ScheduledAt time.Time
	Weights     placement.Options
}

// NewReporter creates a reporter for the given format writing to w.
func NewReporter(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	case "markdown":
		return &MarkdownReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}
