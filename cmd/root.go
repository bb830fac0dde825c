package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rapc-project/rapc/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rapc",
	Short: "Resource-aware topology placement scheduler",
	Long: `rapc places a streaming topology's executors onto a cluster's worker
slots, ranking candidate nodes by a composite of CPU pressure, memory
pressure, and topological distance from a drifting reference node.

It reads a cluster state and topology snapshot (JSON, or live from
Kubernetes or EC2) and reports the resulting slot assignment.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: rapc.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.PersistentFlags().Float64("cpu-weight", 1.0, "node ranker CPU pressure weight")
	rootCmd.PersistentFlags().Float64("mem-weight", 1.0, "node ranker memory pressure weight")
	rootCmd.PersistentFlags().Float64("network-weight", 1.0, "node ranker topological distance weight")
	rootCmd.PersistentFlags().String("output", "table", "output format: table, json, markdown")
	rootCmd.PersistentFlags().String("kubeconfig", "", "path to kubeconfig file, for --from-kube snapshots")
	rootCmd.PersistentFlags().String("kube-context", "", "Kubernetes context name")
	rootCmd.PersistentFlags().String("aws-region", "", "AWS region, for --from-ec2 snapshots")

	_ = viper.BindPFlag("weights.cpu_weight", rootCmd.PersistentFlags().Lookup("cpu-weight"))
	_ = viper.BindPFlag("weights.mem_weight", rootCmd.PersistentFlags().Lookup("mem-weight"))
	_ = viper.BindPFlag("weights.network_weight", rootCmd.PersistentFlags().Lookup("network-weight"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
}

func loadConfig() error {
	cfg = config.Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rapc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.rapc")
	}

	viper.SetEnvPrefix("RAPC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return cfg.Validate()
}
