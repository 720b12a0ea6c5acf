package roadnet

import (
	"github.com/zeu5/impact-eval/types"
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// transitionRow returns the distribution of the next state given the current
// state and the action applied to the segment
func (p *Preset) transitionRow(state, action int) []float64 {
	row := make([]float64, NumStates)
	switch action {
	case types.MinorRepair:
		row[max(state-1, 0)] = 1
	case types.MajorRepair:
		row[max(state-2, 0)] = 1
	case types.Reconstruct:
		row[0] = 1
	default:
		if state == NumStates-1 {
			row[state] = 1
			break
		}
		row[state] = 1 - p.Deterioration[state]
		row[state+1] = p.Deterioration[state]
	}
	return row
}

// observationRow returns the distribution of the observation code given the
// true state. Inspections and interventions reveal the state exactly.
func (p *Preset) observationRow(state, action int) []float64 {
	row := make([]float64, NumStates)
	if action != types.DoNothing {
		row[state] = 1
		return row
	}
	row[state] = p.ObservationAccuracy
	noise := 1 - p.ObservationAccuracy
	switch {
	case state == 0:
		row[1] += noise
	case state == NumStates-1:
		row[state-1] += noise
	default:
		row[state-1] += noise / 2
		row[state+1] += noise / 2
	}
	return row
}

// updateBelief predicts the belief through the transition model and
// conditions it on the received observation
func (p *Preset) updateBelief(belief []float64, action, observation int) []float64 {
	predicted := make([]float64, NumStates)
	for s, prob := range belief {
		if prob == 0 {
			continue
		}
		for next, t := range p.transitionRow(s, action) {
			predicted[next] += prob * t
		}
	}
	posterior := make([]float64, NumStates)
	total := 0.0
	for s, prob := range predicted {
		posterior[s] = prob * p.observationRow(s, action)[observation]
		total += posterior[s]
	}
	if total == 0 {
		// observation impossible under the model, fall back to the prediction
		return predicted
	}
	for s := range posterior {
		posterior[s] /= total
	}
	return posterior
}

func oneHot(state int) []float64 {
	b := make([]float64, NumStates)
	b[state] = 1
	return b
}

type sampler struct {
	src erand.Source
}

func newSampler(seed uint64) *sampler {
	return &sampler{src: erand.NewSource(seed)}
}

func (s *sampler) draw(weights []float64) int {
	i, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return 0
	}
	return i
}
