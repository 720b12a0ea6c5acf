package benchmarks

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/zeu5/impact-eval/remote"
	"github.com/zeu5/impact-eval/roadnet"
	"github.com/zeu5/impact-eval/types"
)

func newLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// interruptContext is cancelled on SIGINT or when the returned cancel is called
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	doneCh := make(chan struct{})
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

func isRemote(env string) bool {
	return strings.HasPrefix(env, "http://") || strings.HasPrefix(env, "https://")
}

// newEnvironmentConstructor resolves --env to a remote server or a preset,
// loading --env-file into the registry first
func newEnvironmentConstructor(f *Flags, logger *slog.Logger) (types.EnvironmentConstructor, error) {
	if isRemote(f.Environment) {
		logger.Debug("using remote environment", "url", f.Environment)
		return &remote.Constructor{URL: f.Environment}, nil
	}
	preset, err := loadPreset(f, logger)
	if err != nil {
		return nil, err
	}
	return &roadnet.Constructor{Preset: preset, Seed: f.Seed}, nil
}

func loadPreset(f *Flags, logger *slog.Logger) (*roadnet.Preset, error) {
	registry, err := roadnet.NewRegistry()
	if err != nil {
		return nil, err
	}
	if f.EnvironmentFile != "" {
		p, err := registry.LoadFile(f.EnvironmentFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded preset", "name", p.Name, "file", f.EnvironmentFile)
	}
	preset, err := registry.Get(f.Environment)
	if err != nil {
		return nil, err
	}
	logger.Debug("using preset", "name", preset.Name, "edges", len(preset.Edges), "horizon", preset.Horizon, "seed", f.Seed)
	return preset, nil
}
