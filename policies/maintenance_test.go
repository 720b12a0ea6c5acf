package policies

import (
	"errors"
	"testing"

	"github.com/zeu5/impact-eval/types"
)

func observation(timeStep int, edges ...[]int) *types.Observation {
	return &types.Observation{
		EdgeObservations: edges,
		TimeStep:         timeStep,
	}
}

func allObservations() []*types.Observation {
	return []*types.Observation{
		observation(0),
		observation(1, []int{}),
		observation(2, []int{0, 1, 2, 3, 4, 5}),
		observation(3, []int{5}, []int{0, 0}, []int{3, 2, 1}),
		observation(7, []int{6, 4}, []int{}, []int{1}),
	}
}

func TestPoliciesPreserveShape(t *testing.T) {
	for _, name := range Names() {
		p, err := GetPolicy(name)
		if err != nil {
			t.Fatalf("GetPolicy(%s): %v", name, err)
		}
		for _, obs := range allObservations() {
			action := p.Act(obs)
			if err := action.CheckShape(obs); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	}
}

func TestDoNothingPolicy(t *testing.T) {
	p := NewDoNothingPolicy()
	for _, obs := range allObservations() {
		for i, edge := range p.Act(obs) {
			for j, code := range edge {
				if code != types.DoNothing {
					t.Errorf("edge %d segment %d: expected 0, got %d", i, j, code)
				}
			}
		}
	}
}

func TestFailReplacePolicy(t *testing.T) {
	p := NewFailReplacePolicy()
	for code := 0; code <= 6; code++ {
		action := p.Act(observation(0, []int{code}))
		got := action[0][0]
		if code >= 3 && got != types.MajorRepair {
			t.Errorf("code %d: expected 3, got %d", code, got)
		}
		if code < 3 && got != types.DoNothing {
			t.Errorf("code %d: expected 0, got %d", code, got)
		}
	}
}

func TestHeuristicPolicyCases(t *testing.T) {
	tests := []struct {
		code     int
		timeStep int
		expected int
	}{
		{6, 0, 4},
		{5, 1, 4},
		{3, 1, 2},
		{4, 2, 2},
		{2, 3, 2},
		{1, 2, 1},
		{0, 0, 1},
		{0, 3, 0},
		{1, 5, 0},
	}
	p := NewHeuristicPolicy()
	for _, tt := range tests {
		got := p.Act(observation(tt.timeStep, []int{tt.code}))[0][0]
		if got != tt.expected {
			t.Errorf("code=%d t=%d: expected %d, got %d", tt.code, tt.timeStep, tt.expected, got)
		}
	}
}

func TestHeuristicPolicyNeverMajorRepair(t *testing.T) {
	p := NewHeuristicPolicy()
	for timeStep := 0; timeStep < 4; timeStep++ {
		for code := 0; code <= 10; code++ {
			if got := p.Act(observation(timeStep, []int{code}))[0][0]; got == types.MajorRepair {
				t.Errorf("code=%d t=%d: major repair emitted", code, timeStep)
			}
		}
	}
}

func TestHeuristicPolicyIsStateless(t *testing.T) {
	p := NewHeuristicPolicy()
	obs := observation(4, []int{0, 2, 5}, []int{1})
	first := p.Act(obs)
	p.Act(observation(5, []int{3}))
	second := p.Act(obs)
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("edge %d segment %d: %d then %d", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestGetPolicyUnknown(t *testing.T) {
	_, err := GetPolicy("random")
	if !errors.Is(err, types.ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
	if _, err := GetPolicies([]string{Heuristic, "greedy"}); !errors.Is(err, types.ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestGetPolicyNames(t *testing.T) {
	for _, name := range Names() {
		p, err := GetPolicy(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != name {
			t.Errorf("expected name %s, got %s", name, p.Name())
		}
	}
}
