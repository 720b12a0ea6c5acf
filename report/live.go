package report

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"
	"github.com/zeu5/impact-eval/types"
)

// LiveReporter keeps two terminal lines updated in place with the running
// totals of the current episode
type LiveReporter struct {
	writer *uilive.Writer
	second io.Writer

	totalReward float64
	totalDelay  float64
}

var _ types.Reporter = &LiveReporter{}

func NewLiveReporter(out io.Writer) *LiveReporter {
	writer := uilive.New()
	if out != nil {
		writer.Out = out
	}
	return &LiveReporter{
		writer: writer,
		second: writer.Newline(),
	}
}

func (l *LiveReporter) ReportStep(s *types.StepReport) {
	if s.Step == 1 {
		l.totalReward = 0
		l.totalDelay = 0
	}
	l.totalReward += s.Reward
	l.totalDelay += s.Info.NormalizedDelay

	fmt.Fprintf(l.writer, "[%s] step %d, reward: %.2e, total reward: %.3e\n", s.Episode, s.Step, s.Reward, l.totalReward)
	fmt.Fprintf(l.second, "remaining budget: %.2e, average normalized delay: %.3f\n",
		s.Observation.RemainingBudget, l.totalDelay/float64(s.Step))
	l.writer.Flush()
}

func (l *LiveReporter) ReportEpisode(name string, s *types.Summary) {
	fmt.Fprintf(l.writer, "[%s] done after %d steps, total reward: %.3e\n", name, s.Steps, s.TotalReward)
	l.writer.Flush()
}
