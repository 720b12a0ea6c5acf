package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/impact-eval/remote"
	"github.com/zeu5/impact-eval/roadnet"
)

func ServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a road network preset over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), flags.Debug)
			if isRemote(flags.Environment) {
				return fmt.Errorf("cannot serve remote environment %s", flags.Environment)
			}
			preset, err := loadPreset(flags, logger)
			if err != nil {
				return err
			}
			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			server := remote.NewServer(flags.Addr, &roadnet.Constructor{Preset: preset, Seed: flags.Seed}, logger)
			return server.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Address to listen on")
	return cmd
}
