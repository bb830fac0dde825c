package config

import "fmt"

// Config is the top-level configuration for the rapc CLI.
type Config struct {
	Weights   WeightsConfig   `yaml:"weights"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WeightsConfig configures the Node Ranker's composite distance weights
// (spec §6).
type WeightsConfig struct {
	CPUWeight     float64 `yaml:"cpu_weight" mapstructure:"cpu_weight"`
	MemWeight     float64 `yaml:"mem_weight" mapstructure:"mem_weight"`
	NetworkWeight float64 `yaml:"network_weight" mapstructure:"network_weight"`
}

// SnapshotConfig holds cluster/topology snapshot locations in the config
// file. The schedule command does not read these fields: it takes its
// paths from its --cluster and --topology flags. The scheduling core
// itself never reads a file — this is purely CLI-layer plumbing,
// mirroring how the teacher's config separates collection options from
// the simulation core.
type SnapshotConfig struct {
	ClusterStatePath   string `yaml:"cluster_state_path"`
	TopologyPath       string `yaml:"topology_path"`
	UnassignedTopology string `yaml:"unassigned_topology_id"`
}

// OutputConfig controls how a scheduling result is reported.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// TelemetryConfig controls optional Prometheus metrics collection.
// Exposition is text-rendered to stderr by internal/telemetry's
// RenderText, not served over HTTP — a long-running /metrics endpoint is
// the scheduler-daemon surface spec.md's Non-goals put out of scope.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Weights: WeightsConfig{
			CPUWeight:     1.0,
			MemWeight:     1.0,
			NetworkWeight: 1.0,
		},
		Snapshot: SnapshotConfig{
			UnassignedTopology: "default",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Validate checks the config for consistency.
func (c *Config) Validate() error {
	if c.Weights.CPUWeight < 0 || c.Weights.MemWeight < 0 || c.Weights.NetworkWeight < 0 {
		return fmt.Errorf("ranking weights must be non-negative, got cpu=%v mem=%v network=%v",
			c.Weights.CPUWeight, c.Weights.MemWeight, c.Weights.NetworkWeight)
	}
	validFormats := map[string]bool{"table": true, "json": true, "markdown": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output format must be table, json, or markdown, got %q", c.Output.Format)
	}
	if c.Snapshot.UnassignedTopology == "" {
		c.Snapshot.UnassignedTopology = "default"
	}
	return nil
}
