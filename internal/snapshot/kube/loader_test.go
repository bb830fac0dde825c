package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	resource "k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func node(name string, labels, annotations map[string]string, cpu, memMi string) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Labels:      labels,
			Annotations: annotations,
		},
		Status: corev1.NodeStatus{
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse(cpu),
				corev1.ResourceMemory: resource.MustParse(memMi),
			},
			Addresses: []corev1.NodeAddress{
				{Type: corev1.NodeHostName, Address: name + ".internal"},
			},
		},
	}
}

func TestLoadClusterState_BuildsNodesAndRacks(t *testing.T) {
	client := fake.NewSimpleClientset( //nolint:staticcheck // NewClientset requires generated apply configs
		node("node-a", map[string]string{"topology.kubernetes.io/zone": "us-east-1a"}, nil, "4", "8192Mi"),
		node("node-b", map[string]string{"topology.kubernetes.io/zone": "us-east-1b"},
			map[string]string{"rapc.io/worker-ports": "6700,6701"}, "8", "16384Mi"),
	)

	state, err := LoadClusterState(context.Background(), client, DefaultLoadOptions(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, ok := state.NodeByID("node-a")
	if !ok {
		t.Fatal("expected node-a to be present")
	}
	if a.TotalCPU != 4 {
		t.Errorf("expected node-a cpu 4, got %v", a.TotalCPU)
	}
	if a.TotalMem != 8192 {
		t.Errorf("expected node-a mem 8192 MiB, got %v", a.TotalMem)
	}
	if len(a.FreeSlots()) != 4 {
		t.Errorf("expected node-a to fall back to the 4 default ports, got %v", a.FreeSlots())
	}

	b, ok := state.NodeByID("node-b")
	if !ok {
		t.Fatal("expected node-b to be present")
	}
	if len(b.FreeSlots()) != 2 {
		t.Errorf("expected node-b to use its annotated ports, got %v", b.FreeSlots())
	}

	rackA, ok := state.RackOf(a)
	if !ok || rackA != "us-east-1a" {
		t.Errorf("expected node-a in rack us-east-1a, got %v, %v", rackA, ok)
	}
}

func TestLoadClusterState_DefaultsUnzonedNodeToUnzonedRack(t *testing.T) {
	client := fake.NewSimpleClientset(node("node-c", nil, nil, "2", "4096Mi")) //nolint:staticcheck // NewClientset requires generated apply configs

	state, err := LoadClusterState(context.Background(), client, DefaultLoadOptions(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, ok := state.NodeByID("node-c")
	if !ok {
		t.Fatal("expected node-c to be present")
	}
	rack, ok := state.RackOf(c)
	if !ok || rack != "unzoned" {
		t.Errorf("expected node-c in the unzoned rack, got %v, %v", rack, ok)
	}
}
