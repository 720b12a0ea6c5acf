package record

import (
	"log/slog"

	"github.com/zeu5/impact-eval/types"
	"github.com/zeu5/impact-eval/util"
)

// FileRecorder appends records as JSON lines to a file
type FileRecorder struct {
	path   string
	runID  string
	logger *slog.Logger
}

var _ types.Reporter = &FileRecorder{}

func NewFileRecorder(path, runID string, logger *slog.Logger) *FileRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRecorder{path: path, runID: runID, logger: logger}
}

func (f *FileRecorder) ReportStep(s *types.StepReport) {
	f.write(stepRecord(f.runID, s))
}

func (f *FileRecorder) ReportEpisode(name string, s *types.Summary) {
	f.write(episodeRecord(f.runID, name, s))
}

func (f *FileRecorder) write(rec *Record) {
	data, err := rec.encode()
	if err != nil {
		f.logger.Error("encode record", "kind", rec.Kind, "err", err)
		return
	}
	if err := util.AppendToFile(f.path, string(data)); err != nil {
		f.logger.Warn("write record failed", "path", f.path, "err", err)
	}
}
