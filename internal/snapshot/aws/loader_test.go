package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// fakeEC2 is a hand-rolled double for ec2API, since the teacher's own
// package never needed one (it talks to the real API behind provider.go).
type fakeEC2 struct {
	instances []ec2types.Instance
	types     []ec2types.InstanceTypeInfo
}

func (f *fakeEC2) DescribeInstances(_ context.Context, _ *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{Instances: f.instances}},
	}, nil
}

func (f *fakeEC2) DescribeInstanceTypes(_ context.Context, _ *ec2.DescribeInstanceTypesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error) {
	return &ec2.DescribeInstanceTypesOutput{InstanceTypes: f.types}, nil
}

func TestLoadClusterState_BuildsNodesFromInstanceCapacity(t *testing.T) {
	client := &fakeEC2{
		instances: []ec2types.Instance{
			{
				InstanceId:     aws.String("i-0abc"),
				InstanceType:   ec2types.InstanceTypeM5Large,
				PrivateDnsName: aws.String("i-0abc.ec2.internal"),
				Placement:      &ec2types.Placement{AvailabilityZone: aws.String("us-east-1a")},
			},
		},
		types: []ec2types.InstanceTypeInfo{
			{
				InstanceType: ec2types.InstanceTypeM5Large,
				VCpuInfo:     &ec2types.VCpuInfo{DefaultVCpus: aws.Int32(2)},
				MemoryInfo:   &ec2types.MemoryInfo{SizeInMiB: aws.Int64(8192)},
			},
		},
	}

	state, err := loadClusterState(context.Background(), client, DefaultLoadOptions("us-east-1"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, ok := state.NodeByID("i-0abc")
	if !ok {
		t.Fatal("expected node i-0abc to be present")
	}
	if n.TotalCPU != 2 {
		t.Errorf("expected 2 vcpus, got %v", n.TotalCPU)
	}
	if n.TotalMem != 8192 {
		t.Errorf("expected 8192 MiB, got %v", n.TotalMem)
	}
	if len(n.FreeSlots()) != 4 {
		t.Errorf("expected the 4 default ports, got %v", n.FreeSlots())
	}

	rack, ok := state.RackOf(n)
	if !ok || rack != "us-east-1a" {
		t.Errorf("expected rack us-east-1a, got %v, %v", rack, ok)
	}
}

func TestLoadClusterState_SkipsInstancesOfUnknownType(t *testing.T) {
	client := &fakeEC2{
		instances: []ec2types.Instance{
			{InstanceId: aws.String("i-unknown"), InstanceType: ec2types.InstanceTypeT3Micro},
		},
		types: nil,
	}

	state, err := loadClusterState(context.Background(), client, DefaultLoadOptions("us-east-1"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := state.NodeByID("i-unknown"); ok {
		t.Error("expected instance with no matching type capacity to be skipped")
	}
}

func TestLoadClusterState_DefaultsUnplacedInstanceToUnzonedRack(t *testing.T) {
	client := &fakeEC2{
		instances: []ec2types.Instance{
			{InstanceId: aws.String("i-noaz"), InstanceType: ec2types.InstanceTypeM5Large},
		},
		types: []ec2types.InstanceTypeInfo{
			{
				InstanceType: ec2types.InstanceTypeM5Large,
				VCpuInfo:     &ec2types.VCpuInfo{DefaultVCpus: aws.Int32(2)},
				MemoryInfo:   &ec2types.MemoryInfo{SizeInMiB: aws.Int64(8192)},
			},
		},
	}

	state, err := loadClusterState(context.Background(), client, DefaultLoadOptions("us-east-1"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := state.NodeByID("i-noaz")
	if !ok {
		t.Fatal("expected node i-noaz to be present")
	}
	rack, ok := state.RackOf(n)
	if !ok || rack != "unzoned" {
		t.Errorf("expected unzoned rack, got %v, %v", rack, ok)
	}
}
