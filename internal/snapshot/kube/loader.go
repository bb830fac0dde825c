// Package kube builds a cluster.State snapshot from a live Kubernetes
// cluster's Node objects, the same kubeconfig-resolution idiom as the
// teacher's internal/kube/client.go. It is explicitly out of the
// scheduling core's hot path: this package only ever produces the same
// cluster.State the JSON loader produces, so internal/placement never
// imports client-go.
package kube

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/rapc-project/rapc/internal/cluster"
)

// LoadOptions configures how Node objects are translated into RAPC's
// resource and slot model.
type LoadOptions struct {
	// PortsAnnotation names the Node annotation holding a comma-separated
	// list of worker slot ports, e.g. "rapc.io/worker-ports=6700,6701,6702".
	// A Node without this annotation falls back to DefaultPorts.
	PortsAnnotation string
	DefaultPorts    []int

	// ZoneLabel names the Node label used as the rack id, defaulting to
	// the well-known topology.kubernetes.io/zone.
	ZoneLabel string
}

// DefaultLoadOptions returns the conventions this loader uses absent
// explicit configuration.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		PortsAnnotation: "rapc.io/worker-ports",
		DefaultPorts:    []int{6700, 6701, 6702, 6703},
		ZoneLabel:       "topology.kubernetes.io/zone",
	}
}

// LoadClusterState lists the cluster's Nodes and builds a cluster.State
// from their allocatable CPU/memory and the zone label as rack
// membership, mirroring the teacher's label-selector discovery idiom
// but reading Nodes instead of Services.
func LoadClusterState(ctx context.Context, client kubernetes.Interface, opts LoadOptions, log cluster.Logger) (*cluster.State, error) {
	nodeList, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing kubernetes nodes: %w", err)
	}

	nodes := make([]*cluster.Node, 0, len(nodeList.Items))
	topography := make(map[cluster.RackID][]string)

	for _, n := range nodeList.Items {
		cpu, mem := allocatable(n)
		ports := portsFor(n, opts)
		hostname := hostnameFor(n)

		nodes = append(nodes, cluster.NewNode(cluster.NodeID(n.Name), hostname, cpu, mem, ports))

		rack := cluster.RackID(n.Labels[opts.ZoneLabel])
		if rack == "" {
			rack = "unzoned"
		}
		topography[rack] = append(topography[rack], hostname)
	}

	return cluster.NewState(nodes, topography, log), nil
}

// allocatable returns a Node's allocatable CPU (in cores) and memory (in
// MiB), the resource units RAPC's ranker operates on.
func allocatable(n corev1.Node) (cpu, mem float64) {
	if q, ok := n.Status.Allocatable[corev1.ResourceCPU]; ok {
		cpu = float64(q.MilliValue()) / 1000.0
	}
	if q, ok := n.Status.Allocatable[corev1.ResourceMemory]; ok {
		mem = float64(q.Value()) / (1024.0 * 1024.0)
	}
	return cpu, mem
}

func hostnameFor(n corev1.Node) string {
	for _, addr := range n.Status.Addresses {
		if addr.Type == corev1.NodeHostName {
			return addr.Address
		}
	}
	return n.Name
}

func portsFor(n corev1.Node, opts LoadOptions) []int {
	raw, ok := n.Annotations[opts.PortsAnnotation]
	if !ok || raw == "" {
		return opts.DefaultPorts
	}

	var ports []int
	for _, part := range strings.Split(raw, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ports = append(ports, p)
	}
	if len(ports) == 0 {
		return opts.DefaultPorts
	}
	return ports
}
