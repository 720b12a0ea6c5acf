package benchmarks

import (
	"context"
	"log/slog"
	"os"
	"path"

	"github.com/zeu5/impact-eval/record"
	"github.com/zeu5/impact-eval/types"
)

// outputs holds the recorders selected by OutputFlags
type outputs struct {
	runID     string
	reporters types.MultiReporter
	closers   []func() error
	logger    *slog.Logger
}

func newOutputs(ctx context.Context, f *Flags, logger *slog.Logger) (*outputs, error) {
	o := &outputs{
		runID:     record.NewRunID(),
		reporters: types.MultiReporter{},
		closers:   make([]func() error, 0),
		logger:    logger,
	}
	logger.Debug("run started", "run_id", o.runID)

	if f.RecordSteps {
		if err := os.MkdirAll(f.SavePath, 0755); err != nil {
			return nil, err
		}
		if err := f.Record(); err != nil {
			return nil, err
		}
		o.reporters = append(o.reporters, record.NewFileRecorder(path.Join(f.SavePath, o.runID+".jsonl"), o.runID, logger))
	}
	if f.RedisAddr != "" {
		recorder := record.NewRedisRecorder(ctx, f.RedisAddr, f.RedisKey, o.runID, logger)
		if err := recorder.Ping(); err != nil {
			logger.Warn("redis unreachable, records will be dropped", "addr", f.RedisAddr, "err", err)
		}
		o.reporters = append(o.reporters, recorder)
		o.closers = append(o.closers, recorder.Close)
	}
	if f.DBPath != "" {
		store, err := record.NewStore(f.DBPath)
		if err != nil {
			o.Close()
			return nil, err
		}
		o.reporters = append(o.reporters, store.Reporter(o.runID, f.Environment, f.Seed, logger))
		o.closers = append(o.closers, store.Close)
	}
	return o, nil
}

func (o *outputs) Close() {
	for _, c := range o.closers {
		if err := c(); err != nil {
			o.logger.Warn("close output", "err", err)
		}
	}
}
