package record

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zeu5/impact-eval/types"
)

// Kinds of records
const (
	KindStep    = "step"
	KindEpisode = "episode"
)

// Record is the serialized form of a step or an episode summary shared by
// the recorders
type Record struct {
	RunID   string            `json:"run_id"`
	Kind    string            `json:"kind"`
	Episode string            `json:"episode"`
	Time    time.Time         `json:"time"`
	Step    *types.StepReport `json:"step,omitempty"`
	Summary *types.Summary    `json:"summary,omitempty"`
}

// NewRunID returns a fresh identifier for one invocation
func NewRunID() string {
	return uuid.NewString()
}

func stepRecord(runID string, s *types.StepReport) *Record {
	return &Record{
		RunID:   runID,
		Kind:    KindStep,
		Episode: s.Episode,
		Time:    time.Now().UTC(),
		Step:    s,
	}
}

func episodeRecord(runID, name string, s *types.Summary) *Record {
	return &Record{
		RunID:   runID,
		Kind:    KindEpisode,
		Episode: name,
		Time:    time.Now().UTC(),
		Summary: s,
	}
}

func (r *Record) encode() ([]byte, error) {
	return json.Marshal(r)
}
