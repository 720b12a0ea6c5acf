package record

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/zeu5/impact-eval/types"
)

// RedisRecorder appends every step and episode record to a redis list
type RedisRecorder struct {
	ctx    context.Context
	client *redis.Client
	key    string
	runID  string
	logger *slog.Logger
}

var _ types.Reporter = &RedisRecorder{}

func NewRedisRecorder(ctx context.Context, addr, key, runID string, logger *slog.Logger) *RedisRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRecorder{
		ctx: ctx,
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		key:    key,
		runID:  runID,
		logger: logger,
	}
}

// Ping checks that the redis server is reachable
func (r *RedisRecorder) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

func (r *RedisRecorder) ReportStep(s *types.StepReport) {
	r.push(stepRecord(r.runID, s))
}

func (r *RedisRecorder) ReportEpisode(name string, s *types.Summary) {
	r.push(episodeRecord(r.runID, name, s))
}

// push logs failures instead of returning them, recording never aborts an episode
func (r *RedisRecorder) push(rec *Record) {
	data, err := rec.encode()
	if err != nil {
		r.logger.Error("encode record", "kind", rec.Kind, "err", err)
		return
	}
	if err := r.client.RPush(r.ctx, r.key, data).Err(); err != nil {
		r.logger.Warn("redis push failed", "key", r.key, "kind", rec.Kind, "err", err)
	}
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}
