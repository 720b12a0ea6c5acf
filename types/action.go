package types

import "fmt"

// Maintenance action codes
const (
	DoNothing    = 0
	Inspect      = 1
	MinorRepair  = 2
	MajorRepair  = 3
	Reconstruct  = 4
	NumActions   = 5
	MaxCondition = 5
)

var actionNames = []string{"do-nothing", "inspect", "minor-repair", "major-repair", "reconstruct"}

// ActionName returns a readable label for an action code
func ActionName(code int) string {
	if code < 0 || code >= len(actionNames) {
		return fmt.Sprintf("unknown(%d)", code)
	}
	return actionNames[code]
}

// Action assigns one action code per segment, per edge
type Action [][]int

// NewAction returns an action shaped like the observation with every segment set to code
func NewAction(obs *Observation, code int) Action {
	action := make(Action, len(obs.EdgeObservations))
	for i, edge := range obs.EdgeObservations {
		action[i] = make([]int, len(edge))
		for j := range edge {
			action[i][j] = code
		}
	}
	return action
}

// CheckShape verifies that the action mirrors the edge/segment shape of the observation
func (a Action) CheckShape(obs *Observation) error {
	if len(a) != len(obs.EdgeObservations) {
		return fmt.Errorf("%w: %d edges, observation has %d", ErrActionShape, len(a), len(obs.EdgeObservations))
	}
	for i, edge := range obs.EdgeObservations {
		if len(a[i]) != len(edge) {
			return fmt.Errorf("%w: edge %d has %d segments, observation has %d", ErrActionShape, i, len(a[i]), len(edge))
		}
	}
	return nil
}

// Counts returns how many segments received each action code
func (a Action) Counts() [NumActions]int {
	var counts [NumActions]int
	for _, edge := range a {
		for _, code := range edge {
			if code >= 0 && code < NumActions {
				counts[code]++
			}
		}
	}
	return counts
}
