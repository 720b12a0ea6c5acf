package benchmarks

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/zeu5/impact-eval/policies"
	"github.com/zeu5/impact-eval/report"
	"github.com/zeu5/impact-eval/types"
)

func RunCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one episode of a policy and print its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags)
		},
	}
}

func runCommand(cmd *cobra.Command, flags *Flags) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.Debug)
	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	_, err := runEpisode(ctx, flags, cmd.OutOrStdout(), logger)
	return err
}

// runEpisode evaluates flags.Policy for one episode on the configured environment
func runEpisode(ctx context.Context, flags *Flags, out io.Writer, logger *slog.Logger) (*types.Summary, error) {
	policy, err := policies.GetPolicy(flags.Policy)
	if err != nil {
		return nil, err
	}
	constructor, err := newEnvironmentConstructor(flags, logger)
	if err != nil {
		return nil, err
	}
	env, err := constructor.NewEnvironment()
	if err != nil {
		return nil, err
	}

	o, err := newOutputs(ctx, flags, logger)
	if err != nil {
		return nil, err
	}
	defer o.Close()

	console := report.NewConsoleReporter(out, flags.PrintSegmentInfo)
	reporters := types.MultiReporter{console}
	if flags.Live {
		reporters = types.MultiReporter{report.NewLiveReporter(out)}
	}
	reporters = append(reporters, o.reporters...)

	agent := types.NewAgent(&types.AgentConfig{
		Name:        policy.Name(),
		Policy:      policy,
		Environment: env,
		Reporter:    reporters,
	})
	summary, err := agent.RunEpisode(ctx)
	if err != nil {
		return nil, err
	}
	if flags.Live {
		console.ReportEpisode(policy.Name(), summary)
	}
	logger.Debug("episode finished", "run_id", o.runID, "policy", policy.Name(), "steps", summary.Steps)
	return summary, nil
}
