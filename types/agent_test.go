package types

import (
	"context"
	"errors"
	"math"
	"testing"
)

// countdownEnvironment reports done after a fixed number of steps
type countdownEnvironment struct {
	horizon  int
	rewards  []float64
	failAt   int
	failErr  error
	steps    int
	resets   int
	received []Action
}

func newCountdownEnvironment(horizon int) *countdownEnvironment {
	rewards := make([]float64, horizon)
	for i := range rewards {
		rewards[i] = -float64(i+1) * 1.1
	}
	return &countdownEnvironment{horizon: horizon, rewards: rewards}
}

func (c *countdownEnvironment) observation() *Observation {
	return &Observation{
		EdgeObservations:       [][]int{{0, 3}, {5}},
		EdgeBeliefs:            [][][]float64{{{1, 0}, {0, 1}}, {{0.5, 0.5}}},
		EdgeTrafficUtilization: [][]float64{{0.2, 0.8}, {0.5}},
		TimeStep:               c.steps,
		RemainingBudget:        100,
		RemainingBudgetYears:   float64(c.horizon - c.steps),
	}
}

func (c *countdownEnvironment) Reset(_ context.Context) (*Observation, error) {
	c.resets++
	c.steps = 0
	return c.observation(), nil
}

func (c *countdownEnvironment) Step(_ context.Context, a Action) (*StepResult, error) {
	if c.failAt > 0 && c.steps+1 == c.failAt {
		return nil, c.failErr
	}
	c.received = append(c.received, a)
	reward := c.rewards[c.steps]
	c.steps++
	return &StepResult{
		Observation: c.observation(),
		Reward:      reward,
		Done:        c.steps >= c.horizon,
		Info: &Info{
			RewardElements:  [2]float64{reward / 2, reward / 2},
			TotalTravelTime: 10,
			NormalizedDelay: 0.5,
			States:          [][]int{{0, 3}, {5}},
		},
	}, nil
}

func constantPolicy(code int) Policy {
	return NewPolicyFunc("constant", func(obs *Observation) Action {
		return NewAction(obs, code)
	})
}

type countingReporter struct {
	steps    []int
	episodes int
	summary  *Summary
}

func (c *countingReporter) ReportStep(s *StepReport) {
	c.steps = append(c.steps, s.Step)
}

func (c *countingReporter) ReportEpisode(_ string, s *Summary) {
	c.episodes++
	c.summary = s
}

func TestAgentRunEpisode(t *testing.T) {
	env := newCountdownEnvironment(5)
	reporter := &countingReporter{}
	agent := NewAgent(&AgentConfig{
		Name:        "test",
		Policy:      constantPolicy(Inspect),
		Environment: env,
		Reporter:    reporter,
	})
	summary, err := agent.RunEpisode(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Steps != 5 || env.steps != 5 {
		t.Errorf("expected 5 steps, got summary %d env %d", summary.Steps, env.steps)
	}
	expected := 0.0
	for _, r := range env.rewards {
		expected += r
	}
	if math.Abs(summary.TotalReward-expected) > 1e-9 {
		t.Errorf("expected total reward %f, got %f", expected, summary.TotalReward)
	}
	if math.Abs(summary.AverageNormalizedDelay-0.5) > 1e-9 {
		t.Errorf("expected average delay 0.5, got %f", summary.AverageNormalizedDelay)
	}
	if len(reporter.steps) != 5 || reporter.steps[0] != 1 || reporter.steps[4] != 5 {
		t.Errorf("unexpected reported steps %v", reporter.steps)
	}
	if reporter.episodes != 1 {
		t.Errorf("expected 1 episode report, got %d", reporter.episodes)
	}
	if env.resets != 1 {
		t.Errorf("expected 1 reset, got %d", env.resets)
	}
}

func TestEpisodeStateMachine(t *testing.T) {
	env := newCountdownEnvironment(2)
	episode := NewEpisode("test", constantPolicy(DoNothing), env, nil)
	if err := episode.Step(context.Background()); err == nil {
		t.Errorf("expected an error stepping before reset")
	}
	if err := episode.Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if episode.Status() != EpisodeRunning {
		t.Errorf("expected running, got %s", episode.Status())
	}
	for !episode.Done() {
		if err := episode.Step(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := episode.Step(context.Background()); !errors.Is(err, ErrEpisodeDone) {
		t.Errorf("expected ErrEpisodeDone, got %v", err)
	}
	if episode.Steps() != 2 || len(env.received) != 2 {
		t.Errorf("expected 2 steps, got %d", episode.Steps())
	}
}

func TestAgentPropagatesEnvironmentError(t *testing.T) {
	failure := errors.New("simulator crashed")
	env := newCountdownEnvironment(5)
	env.failAt = 3
	env.failErr = failure
	reporter := &countingReporter{}
	agent := NewAgent(&AgentConfig{
		Name:        "test",
		Policy:      constantPolicy(DoNothing),
		Environment: env,
		Reporter:    reporter,
	})
	summary, err := agent.RunEpisode(context.Background())
	if !errors.Is(err, failure) {
		t.Errorf("expected the environment error, got %v", err)
	}
	if summary != nil {
		t.Errorf("expected no summary on failure")
	}
	if reporter.episodes != 0 {
		t.Errorf("expected no episode report on failure")
	}
	if len(reporter.steps) != 2 {
		t.Errorf("expected 2 reported steps before failure, got %d", len(reporter.steps))
	}
}

func TestAgentRejectsMisshapenAction(t *testing.T) {
	env := newCountdownEnvironment(3)
	policy := NewPolicyFunc("broken", func(_ *Observation) Action {
		return Action{{0}}
	})
	agent := NewAgent(&AgentConfig{Name: "test", Policy: policy, Environment: env})
	if _, err := agent.RunEpisode(context.Background()); !errors.Is(err, ErrActionShape) {
		t.Errorf("expected ErrActionShape, got %v", err)
	}
	if len(env.received) != 0 {
		t.Errorf("environment should not receive a misshapen action")
	}
}

func TestAgentStopsOnCancelledContext(t *testing.T) {
	env := newCountdownEnvironment(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	agent := NewAgent(&AgentConfig{Name: "test", Policy: constantPolicy(DoNothing), Environment: env})
	if _, err := agent.RunEpisode(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestActionCounts(t *testing.T) {
	counts := Action{{0, 1, 1}, {4}, {2, 9}}.Counts()
	expected := [NumActions]int{1, 2, 1, 0, 1}
	if counts != expected {
		t.Errorf("expected %v, got %v", expected, counts)
	}
}
