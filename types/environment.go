package types

import "context"

// Environment is the contract the episode loop drives.
// Implementations report failures through the returned error, which the
// loop treats as fatal for the episode.
type Environment interface {
	// Reset starts a new episode and returns the first observation
	Reset(context.Context) (*Observation, error)
	// Step applies the maintenance actions for one time step
	Step(context.Context, Action) (*StepResult, error)
}

// Observation is what the environment exposes to policies at each step.
// EdgeObservations, EdgeBeliefs and EdgeTrafficUtilization are index-aligned:
// edge i, segment j refers to the same physical segment in all three.
type Observation struct {
	EdgeObservations       [][]int       `json:"edge_observations"`
	EdgeBeliefs            [][][]float64 `json:"edge_beliefs"`
	EdgeTrafficUtilization [][]float64   `json:"edge_traffic_utilization"`
	TimeStep               int           `json:"time_step"`
	RemainingBudget        float64       `json:"remaining_budget"`
	RemainingBudgetYears   float64       `json:"remaining_budget_years"`
}

// NumSegments returns the total number of segments across all edges
func (o *Observation) NumSegments() int {
	n := 0
	for _, edge := range o.EdgeObservations {
		n += len(edge)
	}
	return n
}

// Info carries per-step diagnostics. States is the ground truth condition and
// is only meant for reporting.
type Info struct {
	RewardElements  [2]float64 `json:"reward_elements"`
	TotalTravelTime float64    `json:"total_travel_time"`
	NormalizedDelay float64    `json:"normalized_delay"`
	States          [][]int    `json:"states"`
}

// TravelTimeReward is the first reward element
func (i *Info) TravelTimeReward() float64 {
	return i.RewardElements[0]
}

// MaintenanceReward is the second reward element
func (i *Info) MaintenanceReward() float64 {
	return i.RewardElements[1]
}

// StepResult is the outcome of Environment.Step
type StepResult struct {
	Observation *Observation `json:"observation"`
	Reward      float64      `json:"reward"`
	Done        bool         `json:"done"`
	Info        *Info        `json:"info"`
}

// EnvironmentConstructor creates fresh environment instances, one per episode
type EnvironmentConstructor interface {
	NewEnvironment() (Environment, error)
}
