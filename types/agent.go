package types

import (
	"context"
	"errors"
	"fmt"
)

type AgentConfig struct {
	Name        string
	Policy      Policy
	Environment Environment
	Reporter    Reporter
}

// Agent runs episodes of a policy against an environment
type Agent struct {
	config   *AgentConfig
	policy   Policy
	env      Environment
	reporter Reporter
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	reporter := config.Reporter
	if reporter == nil {
		reporter = NoopReporter{}
	}
	return &Agent{
		config:   config,
		policy:   config.Policy,
		env:      config.Environment,
		reporter: reporter,
	}
}

// RunEpisode drives one episode to completion and returns the finalized
// metrics. Environment errors abort the episode and are returned unchanged
// in identity.
func (a *Agent) RunEpisode(ctx context.Context) (*Summary, error) {
	episode := NewEpisode(a.config.Name, a.policy, a.env, a.reporter)
	if err := episode.Reset(ctx); err != nil {
		return nil, err
	}
	for !episode.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := episode.Step(ctx); err != nil {
			return nil, err
		}
	}
	summary, err := episode.Finalize()
	if err != nil {
		return nil, err
	}
	a.reporter.ReportEpisode(a.config.Name, summary)
	return summary, nil
}

type EpisodeStatus int

const (
	EpisodeRunning EpisodeStatus = iota
	EpisodeDone
)

func (s EpisodeStatus) String() string {
	if s == EpisodeDone {
		return "done"
	}
	return "running"
}

// Episode owns the observation and accumulator of a single rollout
type Episode struct {
	name     string
	policy   Policy
	env      Environment
	reporter Reporter

	status  EpisodeStatus
	reset   bool
	obs     *Observation
	steps   int
	metrics *Metrics
}

func NewEpisode(name string, policy Policy, env Environment, reporter Reporter) *Episode {
	if reporter == nil {
		reporter = NoopReporter{}
	}
	return &Episode{
		name:     name,
		policy:   policy,
		env:      env,
		reporter: reporter,
		metrics:  NewMetrics(),
	}
}

// Reset obtains the first observation and zeroes the counters
func (e *Episode) Reset(ctx context.Context) error {
	obs, err := e.env.Reset(ctx)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if obs == nil {
		return errors.New("reset: environment returned no observation")
	}
	e.obs = obs
	e.steps = 0
	e.metrics = NewMetrics()
	e.status = EpisodeRunning
	e.reset = true
	return nil
}

// Step runs one policy decision and environment transition
func (e *Episode) Step(ctx context.Context) error {
	if !e.reset {
		return errors.New("step: episode not reset")
	}
	if e.status == EpisodeDone {
		return ErrEpisodeDone
	}
	e.steps++

	action := e.policy.Act(e.obs)
	if err := action.CheckShape(e.obs); err != nil {
		return fmt.Errorf("step %d: policy %s: %w", e.steps, e.policy.Name(), err)
	}
	result, err := e.env.Step(ctx, action)
	if err != nil {
		return fmt.Errorf("step %d: %w", e.steps, err)
	}
	if result == nil || result.Observation == nil || result.Info == nil {
		return fmt.Errorf("step %d: environment returned an incomplete result", e.steps)
	}

	e.metrics.Record(result.Reward, result.Info.RewardElements, result.Info.NormalizedDelay)
	// zero statistics for networks without segments
	util, _ := SummarizeUtilization(result.Observation.EdgeTrafficUtilization)
	e.reporter.ReportStep(&StepReport{
		Episode:     e.name,
		Step:        e.steps,
		Reward:      result.Reward,
		Info:        result.Info,
		Observation: result.Observation,
		Action:      action,
		Utilization: util,
	})

	e.obs = result.Observation
	if result.Done {
		e.status = EpisodeDone
	}
	return nil
}

func (e *Episode) Done() bool {
	return e.status == EpisodeDone
}

func (e *Episode) Status() EpisodeStatus {
	return e.status
}

// Steps is the number of step calls issued to the environment
func (e *Episode) Steps() int {
	return e.steps
}

// Observation is the current observation
func (e *Episode) Observation() *Observation {
	return e.obs
}

// Metrics exposes the running accumulator for live reporting
func (e *Episode) Metrics() *Metrics {
	return e.metrics
}

func (e *Episode) Finalize() (*Summary, error) {
	return e.metrics.Finalize(e.steps)
}
