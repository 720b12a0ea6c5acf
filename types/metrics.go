package types

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics accumulates reward quantities over an episode without keeping
// per-step history
type Metrics struct {
	totalReward            float64
	totalTravelTimeReward  float64
	totalMaintenanceReward float64
	totalNormalizedDelay   float64
	records                int
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds the quantities of one step to the running totals
func (m *Metrics) Record(reward float64, rewardElements [2]float64, normalizedDelay float64) {
	m.totalReward += reward
	m.totalTravelTimeReward += rewardElements[0]
	m.totalMaintenanceReward += rewardElements[1]
	m.totalNormalizedDelay += normalizedDelay
	m.records++
}

// Records is the number of Record calls since creation
func (m *Metrics) Records() int {
	return m.records
}

// TotalReward returns the running total, usable for live reporting
func (m *Metrics) TotalReward() float64 {
	return m.totalReward
}

// Summary is the finalized view of an episode
type Summary struct {
	Steps                  int     `json:"steps"`
	TotalReward            float64 `json:"total_reward"`
	TotalTravelTimeReward  float64 `json:"total_travel_time_reward"`
	TotalMaintenanceReward float64 `json:"total_maintenance_reward"`
	AverageNormalizedDelay float64 `json:"average_normalized_delay"`
}

// Finalize returns the episode totals and the normalized delay averaged over
// stepCount steps. It fails if no step was recorded.
func (m *Metrics) Finalize(stepCount int) (*Summary, error) {
	if stepCount <= 0 || m.records == 0 {
		return nil, fmt.Errorf("finalize with %d steps: %w", stepCount, ErrNoSteps)
	}
	return &Summary{
		Steps:                  stepCount,
		TotalReward:            m.totalReward,
		TotalTravelTimeReward:  m.totalTravelTimeReward,
		TotalMaintenanceReward: m.totalMaintenanceReward,
		AverageNormalizedDelay: m.totalNormalizedDelay / float64(stepCount),
	}, nil
}

// UtilizationSummary holds statistics over all segment utilizations of one step
type UtilizationSummary struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// SummarizeUtilization flattens the per-edge utilization and computes
// max, min, mean and population standard deviation
func SummarizeUtilization(edgeUtilization [][]float64) (UtilizationSummary, error) {
	flat := make([]float64, 0)
	for _, edge := range edgeUtilization {
		flat = append(flat, edge...)
	}
	if len(flat) == 0 {
		return UtilizationSummary{}, ErrEmptyUtilization
	}
	mean, std := stat.PopMeanStdDev(flat, nil)
	return UtilizationSummary{
		Max:  floats.Max(flat),
		Min:  floats.Min(flat),
		Mean: mean,
		Std:  std,
	}, nil
}
