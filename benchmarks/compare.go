package benchmarks

import (
	"context"
	"io"
	"log/slog"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/impact-eval/policies"
	"github.com/zeu5/impact-eval/report"
	"github.com/zeu5/impact-eval/types"
)

func CompareCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run one episode per policy on the same environment and compare the totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), flags.Debug)
			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			_, err := comparePolicies(ctx, flags, cmd.OutOrStdout(), logger)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&flags.Policies, "policies", flags.Policies, "Policies to compare")
	cmd.Flags().BoolVar(&flags.Plot, "plot", flags.Plot, "Plot reward and delay curves under the save path")
	return cmd
}

func comparePolicies(ctx context.Context, flags *Flags, out io.Writer, logger *slog.Logger) ([]*types.ExperimentResult, error) {
	pols, err := policies.GetPolicies(flags.Policies)
	if err != nil {
		return nil, err
	}
	constructor, err := newEnvironmentConstructor(flags, logger)
	if err != nil {
		return nil, err
	}
	o, err := newOutputs(ctx, flags, logger)
	if err != nil {
		return nil, err
	}
	defer o.Close()

	comparator := types.NoopComparator()
	if flags.Plot {
		comparator = report.SeriesPlotter(path.Join(flags.SavePath, "plots"))
	}
	comparison := types.NewComparison(o.reporters)
	comparison.AddAnalysis("series", report.NewSeriesReporter(), comparator)
	for _, p := range pols {
		comparison.AddExperiment(types.NewExperiment(p.Name(), p, constructor))
	}

	results, err := comparison.Run(ctx)
	if err != nil {
		return nil, err
	}
	report.PrintComparison(out, results)
	return results, nil
}
