package roadnet

import "math"

// BPR link performance parameters
const (
	bprAlpha = 0.15
	bprBeta  = 4
)

type trafficState struct {
	utilization     [][]float64
	totalTravelTime float64
	freeFlowTime    float64
}

// delay is the share of travel time lost to congestion, in [0, 1)
func (t *trafficState) delay() float64 {
	if t.totalTravelTime <= 0 {
		return 0
	}
	return (t.totalTravelTime - t.freeFlowTime) / t.totalTravelTime
}

// assignTraffic computes segment utilization and network travel time for the
// given conditions and work zones. actions may be nil when no work is scheduled.
func (p *Preset) assignTraffic(states [][]int, actions [][]int) *trafficState {
	t := &trafficState{utilization: make([][]float64, len(p.Edges))}
	for i, edge := range p.Edges {
		t.utilization[i] = make([]float64, len(edge.Segments))
		edgeTime := 0.0
		edgeFreeFlow := 0.0
		for j, seg := range edge.Segments {
			capacity := edge.Capacity * p.CapacityFactors.Condition[states[i][j]]
			if actions != nil {
				capacity *= p.CapacityFactors.Action[actions[i][j]]
			}
			u := edge.Volume / capacity
			t.utilization[i][j] = u
			edgeTime += seg.FreeFlowTime * (1 + bprAlpha*math.Pow(u, bprBeta))
			edgeFreeFlow += seg.FreeFlowTime
		}
		t.totalTravelTime += edge.Volume * edgeTime
		t.freeFlowTime += edge.Volume * edgeFreeFlow
	}
	return t
}
