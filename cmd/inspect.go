package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rapc-project/rapc/internal/cluster"
	awssnap "github.com/rapc-project/rapc/internal/snapshot/aws"
	jsonsnap "github.com/rapc-project/rapc/internal/snapshot/json"
	kubesnap "github.com/rapc-project/rapc/internal/snapshot/kube"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Display a cluster state snapshot",
	Long: `Loads a cluster state snapshot, either from a JSON file or live from
Kubernetes or EC2, and displays the nodes and worker slots it contains.
The --save flag writes it back out as a JSON file, for 'rapc schedule'.`,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.String("from-json", "", "path to a cluster state JSON file")
	f.Bool("from-kube", false, "discover the cluster state from live Kubernetes Nodes")
	f.Bool("from-ec2", false, "discover the cluster state from running EC2 instances")
	f.String("save", "", "write the loaded snapshot to this JSON file")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var logf func(string, ...interface{})
	if verbose {
		logf = func(format string, args ...interface{}) { fmt.Fprintf(os.Stderr, format+"\n", args...) }
	}

	state, err := loadInspectedState(ctx, cmd, logf)
	if err != nil {
		return err
	}

	printClusterState(os.Stdout, state)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		return jsonsnap.SaveClusterState(savePath, toClusterStateDoc(state))
	}
	return nil
}

func loadInspectedState(ctx context.Context, cmd *cobra.Command, logf func(string, ...interface{})) (*cluster.State, error) {
	fromJSON, _ := cmd.Flags().GetString("from-json")
	fromKube, _ := cmd.Flags().GetBool("from-kube")
	fromEC2, _ := cmd.Flags().GetBool("from-ec2")

	switch {
	case fromKube:
		kubeconfig, _ := cmd.Flags().GetString("kubeconfig")
		kubeContext, _ := cmd.Flags().GetString("kube-context")
		client, err := kubesnap.NewClient(kubeconfig, kubeContext)
		if err != nil {
			return nil, err
		}
		return kubesnap.LoadClusterState(ctx, client, kubesnap.DefaultLoadOptions(), logf)
	case fromEC2:
		region, _ := cmd.Flags().GetString("aws-region")
		return awssnap.LoadClusterState(ctx, awssnap.DefaultLoadOptions(region), logf)
	case fromJSON != "":
		return jsonsnap.LoadClusterState(fromJSON, logf)
	default:
		return nil, fmt.Errorf("one of --from-json, --from-kube, or --from-ec2 is required")
	}
}

func printClusterState(w *os.File, state *cluster.State) {
	nodes := state.AllNodes()
	fmt.Fprintf(w, "Nodes: %d\n\n", len(nodes))
	fmt.Fprintf(w, "%-20s %-24s %8s %8s %8s %8s %s\n",
		"NODE", "HOSTNAME", "CPU", "AVAIL", "MEM", "AVAIL", "SLOTS")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 100))

	for _, n := range nodes {
		slots := n.FreeSlots()
		ports := make([]string, len(slots))
		for i, s := range slots {
			ports[i] = fmt.Sprintf("%d", s.Port)
		}
		fmt.Fprintf(w, "%-20s %-24s %8.1f %8.1f %8.0f %8.0f %s\n",
			n.ID, n.Hostname, n.TotalCPU, n.AvailCPU, n.TotalMem, n.AvailMem,
			strings.Join(ports, ","))
	}

	racks := state.Racks()
	fmt.Fprintf(w, "\nRacks: %d\n", len(racks))
	for _, r := range racks {
		fmt.Fprintf(w, "  %s: %s\n", r.ID, strings.Join(r.Hostnames, ", "))
	}
}

func toClusterStateDoc(state *cluster.State) jsonsnap.ClusterStateDoc {
	nodes := state.AllNodes()
	doc := jsonsnap.ClusterStateDoc{
		Nodes:             make([]jsonsnap.NodeDoc, 0, len(nodes)),
		NetworkTopography: make(map[string][]string),
	}

	for _, n := range nodes {
		slots := n.FreeSlots()
		ports := make([]int, len(slots))
		for i, s := range slots {
			ports[i] = s.Port
		}
		doc.Nodes = append(doc.Nodes, jsonsnap.NodeDoc{
			ID:       string(n.ID),
			Hostname: n.Hostname,
			TotalCPU: n.TotalCPU,
			TotalMem: n.TotalMem,
			Ports:    ports,
		})
	}

	for _, r := range state.Racks() {
		doc.NetworkTopography[string(r.ID)] = r.Hostnames
	}

	return doc
}
