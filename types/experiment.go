package types

import (
	"context"
	"fmt"
	"sort"
)

// Experiment pairs a policy with the environment it is evaluated on
type Experiment struct {
	Name        string
	policy      Policy
	environment EnvironmentConstructor
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, policy Policy, environment EnvironmentConstructor) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

// Run a single episode of the experiment
func (e *Experiment) Run(ctx context.Context, reporter Reporter) (*Summary, error) {
	env, err := e.environment.NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.Name, err)
	}
	agent := NewAgent(&AgentConfig{
		Name:        e.Name,
		Policy:      e.policy,
		Environment: env,
		Reporter:    reporter,
	})
	summary, err := agent.RunEpisode(ctx)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.Name, err)
	}
	return summary, nil
}

// Generic Dataset that contains information gathered while running an experiment
type DataSet interface{}

// Analyzer observes the steps of an experiment and compresses them to a DataSet
type Analyzer interface {
	Reporter
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between different datasets with associated names
type Comparator func([]string, []DataSet) error

func NoopComparator() Comparator {
	return func(_ []string, _ []DataSet) error { return nil }
}

// ExperimentResult is the outcome of one experiment in a comparison
type ExperimentResult struct {
	Name    string
	Summary *Summary
}

// Comparison runs several experiments one after the other.
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	reporter    Reporter
}

// NewComparison creates a comparison instance; reporter receives every step
// of every experiment and may be nil
func NewComparison(reporter Reporter) *Comparison {
	if reporter == nil {
		reporter = NoopReporter{}
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		reporter:    reporter,
	}
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run the comparison. The first failing experiment aborts the run.
func (c *Comparison) Run(ctx context.Context) ([]*ExperimentResult, error) {
	analyzerNames := make([]string, 0, len(c.analyzers))
	for name := range c.analyzers {
		analyzerNames = append(analyzerNames, name)
	}
	sort.Strings(analyzerNames)

	datasets := make(map[string][]DataSet)
	for _, name := range analyzerNames {
		datasets[name] = make([]DataSet, len(c.Experiments))
	}

	results := make([]*ExperimentResult, len(c.Experiments))
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		reporters := MultiReporter{c.reporter}
		for _, name := range analyzerNames {
			reporters = append(reporters, c.analyzers[name])
		}
		summary, err := e.Run(ctx, reporters)
		if err != nil {
			return nil, err
		}
		for _, name := range analyzerNames {
			datasets[name][i] = c.analyzers[name].DataSet()
			c.analyzers[name].Reset()
		}
		names[i] = e.Name
		results[i] = &ExperimentResult{Name: e.Name, Summary: summary}
	}
	for _, name := range analyzerNames {
		if err := c.comparators[name](names, datasets[name]); err != nil {
			return results, fmt.Errorf("comparator %s: %w", name, err)
		}
	}
	return results, nil
}
