package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/impact-eval/roadnet"
)

func EnvsCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List the available road network presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), flags.Debug)
			registry, err := roadnet.NewRegistry()
			if err != nil {
				return err
			}
			if flags.EnvironmentFile != "" {
				if _, err := registry.LoadFile(flags.EnvironmentFile); err != nil {
					return err
				}
				logger.Debug("loaded preset file", "file", flags.EnvironmentFile)
			}
			for _, name := range registry.Names() {
				p, _ := registry.Get(name)
				marker := ""
				if name == roadnet.DefaultPreset {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %d edges, horizon %d\n", name, marker, len(p.Edges), p.Horizon)
			}
			return nil
		},
	}
}
