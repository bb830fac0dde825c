// Package aws builds a cluster.State snapshot by enriching running EC2
// instances with their instance type's vCPU/memory capacity. It follows
// the teacher's internal/aws/provider.go credential-check and minimal
// ec2API-interface idioms, but reads running instances instead of
// instance-type catalogs.
package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/rapc-project/rapc/internal/cluster"
)

const credentialCheckTimeout = 3 * time.Second

var ErrAWSCredentials = errors.New("AWS credentials not found; set AWS_PROFILE, run 'aws sso login', or configure ~/.aws/credentials")

// ec2API is a minimal interface for the EC2 calls this loader needs.
type ec2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
}

// LoadOptions configures how running instances are translated into
// RAPC's resource and slot model.
type LoadOptions struct {
	Region       string
	DefaultPorts []int
}

// DefaultLoadOptions returns the conventions this loader uses absent
// explicit configuration.
func DefaultLoadOptions(region string) LoadOptions {
	return LoadOptions{
		Region:       region,
		DefaultPorts: []int{6700, 6701, 6702, 6703},
	}
}

// LoadClusterState describes the running EC2 instances in a region and
// builds a cluster.State using each instance's type capacity, with the
// availability zone as rack membership.
func LoadClusterState(ctx context.Context, opts LoadOptions, log cluster.Logger) (*cluster.State, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithEC2IMDSClientEnableState(imds.ClientDisabled),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAWSCredentials, err)
	}

	credCtx, cancel := context.WithTimeout(ctx, credentialCheckTimeout)
	defer cancel()
	if _, err := cfg.Credentials.Retrieve(credCtx); err != nil {
		return nil, ErrAWSCredentials
	}

	client := ec2.NewFromConfig(cfg)
	return loadClusterState(ctx, client, opts, log)
}

func loadClusterState(ctx context.Context, client ec2API, opts LoadOptions, log cluster.Logger) (*cluster.State, error) {
	instances, err := runningInstances(ctx, client)
	if err != nil {
		return nil, err
	}

	capacities, err := instanceTypeCapacities(ctx, client, instances)
	if err != nil {
		return nil, err
	}

	nodes := make([]*cluster.Node, 0, len(instances))
	topography := make(map[cluster.RackID][]string)

	for _, inst := range instances {
		cap, ok := capacities[string(inst.InstanceType)]
		if !ok {
			continue
		}
		id := aws.ToString(inst.InstanceId)
		hostname := id
		if inst.PrivateDnsName != nil && *inst.PrivateDnsName != "" {
			hostname = *inst.PrivateDnsName
		}

		nodes = append(nodes, cluster.NewNode(cluster.NodeID(id), hostname, cap.vcpus, cap.memMiB, opts.DefaultPorts))

		rack := cluster.RackID("unzoned")
		if inst.Placement != nil && inst.Placement.AvailabilityZone != nil {
			rack = cluster.RackID(*inst.Placement.AvailabilityZone)
		}
		topography[rack] = append(topography[rack], hostname)
	}

	return cluster.NewState(nodes, topography, log), nil
}

func runningInstances(ctx context.Context, client ec2API) ([]ec2types.Instance, error) {
	var instances []ec2types.Instance
	var nextToken *string

	for {
		out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters: []ec2types.Filter{
				{Name: aws.String("instance-state-name"), Values: []string{"running"}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("describing ec2 instances: %w", err)
		}

		for _, res := range out.Reservations {
			instances = append(instances, res.Instances...)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return instances, nil
}

type capacity struct {
	vcpus  float64
	memMiB float64
}

func instanceTypeCapacities(ctx context.Context, client ec2API, instances []ec2types.Instance) (map[string]capacity, error) {
	seen := make(map[ec2types.InstanceType]bool)
	var types []ec2types.InstanceType
	for _, inst := range instances {
		if !seen[inst.InstanceType] {
			seen[inst.InstanceType] = true
			types = append(types, inst.InstanceType)
		}
	}
	if len(types) == 0 {
		return map[string]capacity{}, nil
	}

	out, err := client.DescribeInstanceTypes(ctx, &ec2.DescribeInstanceTypesInput{
		InstanceTypes: types,
	})
	if err != nil {
		return nil, fmt.Errorf("describing ec2 instance types: %w", err)
	}

	result := make(map[string]capacity, len(out.InstanceTypes))
	for _, it := range out.InstanceTypes {
		var vcpus, memMiB float64
		if it.VCpuInfo != nil && it.VCpuInfo.DefaultVCpus != nil {
			vcpus = float64(*it.VCpuInfo.DefaultVCpus)
		}
		if it.MemoryInfo != nil && it.MemoryInfo.SizeInMiB != nil {
			memMiB = float64(*it.MemoryInfo.SizeInMiB)
		}
		result[string(it.InstanceType)] = capacity{vcpus: vcpus, memMiB: memMiB}
	}
	return result, nil
}
