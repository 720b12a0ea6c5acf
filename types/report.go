package types

// StepReport is everything the reporting layer sees about one step.
// Observation is the observation returned by the step, Info carries the
// ground truth states that policies never see.
type StepReport struct {
	Episode     string             `json:"episode"`
	Step        int                `json:"step"`
	Reward      float64            `json:"reward"`
	Info        *Info              `json:"info"`
	Observation *Observation       `json:"observation"`
	Action      Action             `json:"action"`
	Utilization UtilizationSummary `json:"utilization"`
}

// Reporter consumes step and episode metrics.
// Reporting is kept out of the loop so the core stays free of formatting.
type Reporter interface {
	ReportStep(*StepReport)
	ReportEpisode(string, *Summary)
}

// MultiReporter fans out to several reporters in order
type MultiReporter []Reporter

var _ Reporter = MultiReporter{}

func (m MultiReporter) ReportStep(s *StepReport) {
	for _, r := range m {
		r.ReportStep(s)
	}
}

func (m MultiReporter) ReportEpisode(name string, s *Summary) {
	for _, r := range m {
		r.ReportEpisode(name, s)
	}
}

// NoopReporter discards everything
type NoopReporter struct{}

var _ Reporter = NoopReporter{}

func (NoopReporter) ReportStep(_ *StepReport) {}

func (NoopReporter) ReportEpisode(_ string, _ *Summary) {}
