package benchmarks

import "github.com/spf13/cobra"

// GetRootCommand builds the command line. Without a subcommand it behaves
// like run.
func GetRootCommand() *cobra.Command {
	flags := DefaultFlags()
	rootCommand := &cobra.Command{
		Use:           "impact-eval",
		Short:         "Evaluate maintenance policies on road network environments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags)
		},
	}
	pf := rootCommand.PersistentFlags()
	pf.StringVar(&flags.Environment, "env", flags.Environment, "Preset name or http:// address of a remote environment")
	pf.StringVar(&flags.EnvironmentFile, "env-file", flags.EnvironmentFile, "Load an additional preset from a JSON file")
	pf.StringVar(&flags.Policy, "policy", flags.Policy, "Policy to evaluate (do_nothing, fail_replace, heuristic)")
	pf.BoolVarP(&flags.PrintSegmentInfo, "print-segment-info", "i", flags.PrintSegmentInfo, "Print states, observations, beliefs and utilization per edge")
	pf.Uint64Var(&flags.Seed, "seed", flags.Seed, "Seed of the simulated environment")
	pf.StringVarP(&flags.SavePath, "save", "s", flags.SavePath, "Save the result data in the specified folder")
	pf.BoolVar(&flags.Debug, "debug", flags.Debug, "Enable debug logging")
	pf.BoolVar(&flags.Live, "live", flags.Live, "Show running totals in place instead of per step output")
	pf.BoolVar(&flags.RecordSteps, "record-steps", flags.RecordSteps, "Record every step as JSON lines under the save path")
	pf.StringVar(&flags.RedisAddr, "redis-addr", flags.RedisAddr, "Push step and episode records to this redis server")
	pf.StringVar(&flags.RedisKey, "redis-key", flags.RedisKey, "Redis list the records are pushed to")
	pf.StringVar(&flags.DBPath, "db", flags.DBPath, "Store episode summaries in this SQLite database")

	rootCommand.AddCommand(RunCommand(flags))
	rootCommand.AddCommand(CompareCommand(flags))
	rootCommand.AddCommand(ServeCommand(flags))
	rootCommand.AddCommand(EnvsCommand(flags))
	return rootCommand
}
