package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/zeu5/impact-eval/types"
)

// ConsoleReporter prints per-step and end-of-episode metrics in plain text
type ConsoleReporter struct {
	out         io.Writer
	segmentInfo bool
}

var _ types.Reporter = &ConsoleReporter{}

// NewConsoleReporter writes to out, or stdout when out is nil. With
// segmentInfo every step also lists states, observations, beliefs and
// utilization per edge.
func NewConsoleReporter(out io.Writer, segmentInfo bool) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out, segmentInfo: segmentInfo}
}

func (c *ConsoleReporter) ReportStep(s *types.StepReport) {
	obs := s.Observation
	fmt.Fprintf(c.out, "timestep: %d\n", s.Step)
	fmt.Fprintf(c.out, "reward: %.2e\n", s.Reward)
	fmt.Fprintf(c.out, "travel_time_reward: %.2e\n", s.Info.TravelTimeReward())
	fmt.Fprintf(c.out, "maintenance_reward: %.2e\n", s.Info.MaintenanceReward())
	fmt.Fprintf(c.out, "total travel time: %v\n", s.Info.TotalTravelTime)
	fmt.Fprintf(c.out, "remaining budget: %.2e\n", obs.RemainingBudget)
	fmt.Fprintf(c.out, "remaining budget time: %v\n", obs.RemainingBudgetYears)
	fmt.Fprintf(c.out, "normalized delay: %.5f\n", s.Info.NormalizedDelay)
	u := s.Utilization
	fmt.Fprintf(c.out, "Utilization: avg: %.2f, std: %.2f, max: %.2f, min: %.2f\n", u.Mean, u.Std, u.Max, u.Min)

	if c.segmentInfo {
		for i := range obs.EdgeObservations {
			fmt.Fprintf(c.out, "\nedge: %d\n", i)
			if i < len(s.Info.States) {
				fmt.Fprintf(c.out, "states:       %s\n", formatInts(s.Info.States[i]))
			}
			fmt.Fprintf(c.out, "observations: %s\n", formatInts(obs.EdgeObservations[i]))
			if i < len(obs.EdgeBeliefs) {
				beliefs := make([]string, len(obs.EdgeBeliefs[i]))
				for j, b := range obs.EdgeBeliefs[i] {
					beliefs[j] = formatFloats(b, 2)
				}
				fmt.Fprintf(c.out, "beliefs:      [%s]\n", strings.Join(beliefs, ", "))
			}
			if i < len(obs.EdgeTrafficUtilization) {
				fmt.Fprintf(c.out, "utilization:  %s\n", formatFloats(obs.EdgeTrafficUtilization[i], -1))
			}
		}
	}
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
}

func (c *ConsoleReporter) ReportEpisode(_ string, s *types.Summary) {
	fmt.Fprintf(c.out, "total reward: %.3e\n", s.TotalReward)
	fmt.Fprintf(c.out, "total travel time reward: %.3e\n", s.TotalTravelTimeReward)
	fmt.Fprintf(c.out, "total maintenance reward: %.3e\n", s.TotalMaintenanceReward)
	fmt.Fprintf(c.out, "average normalized delay: %.3f\n", s.AverageNormalizedDelay)
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatFloats prints values with prec decimals, or the shortest exact form when prec < 0
func formatFloats(values []float64, prec int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintComparison lists the summary of each experiment, best total reward first
func PrintComparison(out io.Writer, results []*types.ExperimentResult) {
	if out == nil {
		out = os.Stdout
	}
	sorted := make([]*types.ExperimentResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Summary.TotalReward > sorted[j].Summary.TotalReward
	})
	for _, r := range sorted {
		s := r.Summary
		fmt.Fprintf(out, "%s: total reward: %.3e, travel time: %.3e, maintenance: %.3e, average normalized delay: %.3f\n",
			r.Name, s.TotalReward, s.TotalTravelTimeReward, s.TotalMaintenanceReward, s.AverageNormalizedDelay)
	}
}
