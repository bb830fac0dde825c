package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rapc-project/rapc/internal/placement"
	"github.com/rapc-project/rapc/internal/report"
	jsonsnap "github.com/rapc-project/rapc/internal/snapshot/json"
	"github.com/rapc-project/rapc/internal/telemetry"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place a topology's unassigned executors onto cluster worker slots",
	Long: `Reads a cluster state snapshot and a topology snapshot (JSON files,
from 'rapc inspect --save') and runs the placement core, reporting the
resulting slot assignment.`,
	RunE: runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.String("cluster", "", "path to cluster state JSON file (required)")
	f.String("topology", "", "path to topology JSON file (required)")
	f.Bool("telemetry", false, "print Prometheus metrics for this run to stderr")
	_ = viper.BindPFlag("telemetry.enabled", f.Lookup("telemetry"))

	_ = scheduleCmd.MarkFlagRequired("cluster")
	_ = scheduleCmd.MarkFlagRequired("topology")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	clusterPath, _ := cmd.Flags().GetString("cluster")
	topologyPath, _ := cmd.Flags().GetString("topology")

	var logf func(string, ...interface{})
	if verbose {
		logf = func(format string, args ...interface{}) { fmt.Fprintf(os.Stderr, format+"\n", args...) }
	}

	state, err := jsonsnap.LoadClusterState(clusterPath, logf)
	if err != nil {
		return err
	}

	td, err := jsonsnap.LoadTopology(topologyPath)
	if err != nil {
		return err
	}

	opts := placement.Options{
		CPUWeight:     cfg.Weights.CPUWeight,
		MemWeight:     cfg.Weights.MemWeight,
		NetworkWeight: cfg.Weights.NetworkWeight,
	}

	var collector *telemetry.Collector
	if cfg.Telemetry.Enabled {
		collector = telemetry.NewCollector()
	}

	start := time.Now()
	result, err := placement.Schedule(state, td, opts)
	duration := time.Since(start)

	if collector != nil {
		outcome := "failure"
		if err == nil && result.Success {
			outcome = "success"
		}
		collector.Observe(outcome, duration, result.Unplaced)
	}

	if err != nil {
		return fmt.Errorf("scheduling: %w", err)
	}

	reporter := report.NewReporter(cfg.Output.Format, os.Stdout)
	meta := report.ReportMeta{
		TopologyID:  td.ID,
		ClusterID:   clusterPath,
		ScheduledAt: start,
		Weights:     opts,
	}

	if err := reporter.Report(ctx, result, meta); err != nil {
		return err
	}

	if collector != nil {
		text, err := collector.RenderText()
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, text)
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
