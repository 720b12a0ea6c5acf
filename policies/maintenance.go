package policies

import "github.com/zeu5/impact-eval/types"

// Condition thresholds on observation codes
const (
	FailureThreshold        = 3
	ReconstructionThreshold = 5
	MinorRepairThreshold    = 2
)

// DoNothingPolicy never intervenes; used as a baseline
type DoNothingPolicy struct{}

var _ types.Policy = DoNothingPolicy{}

func NewDoNothingPolicy() DoNothingPolicy {
	return DoNothingPolicy{}
}

func (DoNothingPolicy) Name() string {
	return DoNothing
}

func (DoNothingPolicy) Act(obs *types.Observation) types.Action {
	return types.NewAction(obs, types.DoNothing)
}

// FailReplacePolicy replaces a segment once it is observed at or above the
// failure threshold and otherwise waits
type FailReplacePolicy struct{}

var _ types.Policy = FailReplacePolicy{}

func NewFailReplacePolicy() FailReplacePolicy {
	return FailReplacePolicy{}
}

func (FailReplacePolicy) Name() string {
	return FailReplace
}

func (FailReplacePolicy) Act(obs *types.Observation) types.Action {
	return mapSegments(obs, func(code int) int {
		if code >= FailureThreshold {
			return types.MajorRepair
		}
		return types.DoNothing
	})
}

// HeuristicPolicy reconstructs failed segments, repairs worn ones and
// inspects the rest on even time steps.
//
// Major repair is never chosen, its rule was shadowed by the reconstruction
// threshold.
type HeuristicPolicy struct{}

var _ types.Policy = HeuristicPolicy{}

func NewHeuristicPolicy() HeuristicPolicy {
	return HeuristicPolicy{}
}

func (HeuristicPolicy) Name() string {
	return Heuristic
}

func (HeuristicPolicy) Act(obs *types.Observation) types.Action {
	evenStep := obs.TimeStep%2 == 0
	return mapSegments(obs, func(code int) int {
		switch {
		case code >= ReconstructionThreshold:
			return types.Reconstruct
		case code >= MinorRepairThreshold:
			return types.MinorRepair
		case evenStep:
			return types.Inspect
		default:
			return types.DoNothing
		}
	})
}

// mapSegments applies decide to every segment observation independently
func mapSegments(obs *types.Observation, decide func(int) int) types.Action {
	action := make(types.Action, len(obs.EdgeObservations))
	for i, edge := range obs.EdgeObservations {
		action[i] = make([]int, len(edge))
		for j, code := range edge {
			action[i][j] = decide(code)
		}
	}
	return action
}
