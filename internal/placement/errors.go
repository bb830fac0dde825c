package placement

import "errors"

// ErrNoSourceComponent is returned by the Topology Walker when a topology
// has no SOURCE component to seed the traversal from.
var ErrNoSourceComponent = errors.New("placement: topology has no source component")

// Status classifies a failed scheduling call.
type Status string

const (
	// FailNotEnoughResources means one or more executors could not be
	// placed under the resource/heap constraints.
	FailNotEnoughResources Status = "FAIL_NOT_ENOUGH_RESOURCES"
	// FailInvalidTopology means the topology had no source component.
	FailInvalidTopology Status = "FAIL_INVALID_TOPOLOGY"
)
