package roadnet

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeu5/impact-eval/types"
)

var (
	ErrNotReset      = errors.New("environment not reset")
	ErrInvalidAction = errors.New("invalid action")
)

// RoadEnvironment simulates deterioration, maintenance and traffic on a
// preset road network
type RoadEnvironment struct {
	preset  *Preset
	seed    uint64
	sampler *sampler

	states          [][]int
	observations    [][]int
	beliefs         [][][]float64
	utilization     [][]float64
	timeStep        int
	remainingBudget float64
	started         bool
	done            bool
}

var _ types.Environment = &RoadEnvironment{}

func NewRoadEnvironment(preset *Preset, seed uint64) *RoadEnvironment {
	return &RoadEnvironment{
		preset: preset,
		seed:   seed,
	}
}

func (r *RoadEnvironment) Preset() *Preset {
	return r.preset
}

func (r *RoadEnvironment) Reset(_ context.Context) (*types.Observation, error) {
	r.sampler = newSampler(r.seed)
	r.states = make([][]int, len(r.preset.Edges))
	r.observations = make([][]int, len(r.preset.Edges))
	r.beliefs = make([][][]float64, len(r.preset.Edges))
	for i, edge := range r.preset.Edges {
		r.states[i] = make([]int, len(edge.Segments))
		r.observations[i] = make([]int, len(edge.Segments))
		r.beliefs[i] = make([][]float64, len(edge.Segments))
		for j, seg := range edge.Segments {
			r.states[i][j] = seg.InitialState
			r.observations[i][j] = seg.InitialState
			r.beliefs[i][j] = oneHot(seg.InitialState)
		}
	}
	r.utilization = r.preset.assignTraffic(r.states, nil).utilization
	r.timeStep = 0
	r.remainingBudget = r.preset.Budget.Amount
	r.started = true
	r.done = false
	return r.observation(), nil
}

func (r *RoadEnvironment) Step(_ context.Context, action types.Action) (*types.StepResult, error) {
	if !r.started {
		return nil, ErrNotReset
	}
	if r.done {
		return nil, types.ErrEpisodeDone
	}
	if err := r.validate(action); err != nil {
		return nil, err
	}

	applied, cost := r.applyBudget(action)
	for i, edge := range applied {
		for j, a := range edge {
			next := r.sampler.draw(r.preset.transitionRow(r.states[i][j], a))
			obs := r.sampler.draw(r.preset.observationRow(next, a))
			r.states[i][j] = next
			r.observations[i][j] = obs
			r.beliefs[i][j] = r.preset.updateBelief(r.beliefs[i][j], a, obs)
		}
	}

	traffic := r.preset.assignTraffic(r.states, applied)
	r.utilization = traffic.utilization
	travelReward := -(traffic.totalTravelTime - traffic.freeFlowTime) * r.preset.ValueOfTime
	maintenanceReward := -cost

	r.timeStep++
	if r.timeStep%r.preset.Budget.Cycle == 0 {
		r.remainingBudget = r.preset.Budget.Amount
	}
	r.done = r.timeStep >= r.preset.Horizon

	return &types.StepResult{
		Observation: r.observation(),
		Reward:      travelReward + maintenanceReward,
		Done:        r.done,
		Info: &types.Info{
			RewardElements:  [2]float64{travelReward, maintenanceReward},
			TotalTravelTime: traffic.totalTravelTime,
			NormalizedDelay: traffic.delay(),
			States:          copyInts(r.states),
		},
	}, nil
}

func (r *RoadEnvironment) validate(action types.Action) error {
	obs := &types.Observation{EdgeObservations: r.observations}
	if err := action.CheckShape(obs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	for i, edge := range action {
		for j, a := range edge {
			if a < 0 || a >= types.NumActions {
				return fmt.Errorf("%w: edge %d segment %d has code %d", ErrInvalidAction, i, j, a)
			}
		}
	}
	return nil
}

// applyBudget spends the remaining budget in edge/segment order; actions that
// can no longer be paid for are replaced by do-nothing
func (r *RoadEnvironment) applyBudget(action types.Action) ([][]int, float64) {
	applied := make([][]int, len(action))
	spent := 0.0
	for i, edge := range action {
		applied[i] = make([]int, len(edge))
		for j, a := range edge {
			cost := r.preset.ActionCosts[a] * r.preset.Edges[i].Segments[j].Length
			if cost > r.remainingBudget {
				applied[i][j] = types.DoNothing
				continue
			}
			r.remainingBudget -= cost
			spent += cost
			applied[i][j] = a
		}
	}
	return applied, spent
}

func (r *RoadEnvironment) observation() *types.Observation {
	beliefs := make([][][]float64, len(r.beliefs))
	for i, edge := range r.beliefs {
		beliefs[i] = make([][]float64, len(edge))
		for j, b := range edge {
			beliefs[i][j] = append([]float64(nil), b...)
		}
	}
	utilization := make([][]float64, len(r.utilization))
	for i, edge := range r.utilization {
		utilization[i] = append([]float64(nil), edge...)
	}
	cycle := r.preset.Budget.Cycle
	return &types.Observation{
		EdgeObservations:       copyInts(r.observations),
		EdgeBeliefs:            beliefs,
		EdgeTrafficUtilization: utilization,
		TimeStep:               r.timeStep,
		RemainingBudget:        r.remainingBudget,
		RemainingBudgetYears:   float64(cycle - r.timeStep%cycle),
	}
}

func copyInts(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, row := range in {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Constructor creates a fresh environment per episode with the same seed
type Constructor struct {
	Preset *Preset
	Seed   uint64
}

var _ types.EnvironmentConstructor = &Constructor{}

func (c *Constructor) NewEnvironment() (types.Environment, error) {
	return NewRoadEnvironment(c.Preset, c.Seed), nil
}
