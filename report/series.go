package report

import "github.com/zeu5/impact-eval/types"

// Series is the per-step history of one episode
type Series struct {
	Rewards          []float64
	NormalizedDelays []float64
}

// Cumulative returns the running sum of the rewards
func (s *Series) Cumulative() []float64 {
	out := make([]float64, len(s.Rewards))
	total := 0.0
	for i, r := range s.Rewards {
		total += r
		out[i] = total
	}
	return out
}

// SeriesReporter collects a Series per experiment for comparators
type SeriesReporter struct {
	series *Series
}

var _ types.Analyzer = &SeriesReporter{}

func NewSeriesReporter() *SeriesReporter {
	return &SeriesReporter{series: &Series{}}
}

func (s *SeriesReporter) ReportStep(r *types.StepReport) {
	s.series.Rewards = append(s.series.Rewards, r.Reward)
	s.series.NormalizedDelays = append(s.series.NormalizedDelays, r.Info.NormalizedDelay)
}

func (s *SeriesReporter) ReportEpisode(_ string, _ *types.Summary) {}

func (s *SeriesReporter) DataSet() types.DataSet {
	return s.series
}

func (s *SeriesReporter) Reset() {
	s.series = &Series{}
}
