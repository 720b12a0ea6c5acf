package record

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zeu5/impact-eval/types"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	episode_id               TEXT PRIMARY KEY,
	run_id                   TEXT NOT NULL,
	policy                   TEXT NOT NULL,
	environment              TEXT NOT NULL,
	seed                     INTEGER NOT NULL,
	steps                    INTEGER NOT NULL,
	total_reward             REAL NOT NULL,
	total_travel_time_reward REAL NOT NULL,
	total_maintenance_reward REAL NOT NULL,
	average_normalized_delay REAL NOT NULL,
	created_at               TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS episodes_run ON episodes(run_id);
`

// EpisodeRow is one stored episode summary
type EpisodeRow struct {
	EpisodeID   string
	RunID       string
	Policy      string
	Environment string
	Seed        uint64
	Summary     types.Summary
	CreatedAt   time.Time
}

// Store keeps episode summaries in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens the database at dbPath and creates the schema
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEpisode stores a summary and returns the new episode id
func (s *Store) SaveEpisode(runID, policy, environment string, seed uint64, summary *types.Summary) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO episodes (episode_id, run_id, policy, environment, seed, steps,
			total_reward, total_travel_time_reward, total_maintenance_reward,
			average_normalized_delay, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, runID, policy, environment, int64(seed), summary.Steps,
		summary.TotalReward, summary.TotalTravelTimeReward, summary.TotalMaintenanceReward,
		summary.AverageNormalizedDelay, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert episode: %w", err)
	}
	return id, nil
}

// Episodes returns the summaries of a run in insertion order, or of every
// run when runID is empty
func (s *Store) Episodes(runID string) ([]*EpisodeRow, error) {
	query := `SELECT episode_id, run_id, policy, environment, seed, steps,
		total_reward, total_travel_time_reward, total_maintenance_reward,
		average_normalized_delay, created_at
		FROM episodes`
	args := []interface{}{}
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	out := make([]*EpisodeRow, 0)
	for rows.Next() {
		row := &EpisodeRow{}
		var seed int64
		var createdAt string
		if err := rows.Scan(&row.EpisodeID, &row.RunID, &row.Policy, &row.Environment, &seed,
			&row.Summary.Steps, &row.Summary.TotalReward, &row.Summary.TotalTravelTimeReward,
			&row.Summary.TotalMaintenanceReward, &row.Summary.AverageNormalizedDelay, &createdAt); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		row.Seed = uint64(seed)
		row.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Reporter returns a reporter saving every finished episode of the run.
// Failures are logged.
func (s *Store) Reporter(runID, environment string, seed uint64, logger *slog.Logger) types.Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &storeReporter{store: s, runID: runID, environment: environment, seed: seed, logger: logger}
}

type storeReporter struct {
	store       *Store
	runID       string
	environment string
	seed        uint64
	logger      *slog.Logger
}

func (r *storeReporter) ReportStep(_ *types.StepReport) {}

func (r *storeReporter) ReportEpisode(name string, s *types.Summary) {
	id, err := r.store.SaveEpisode(r.runID, name, r.environment, r.seed, s)
	if err != nil {
		r.logger.Warn("store episode failed", "episode", name, "err", err)
		return
	}
	r.logger.Debug("episode stored", "episode", name, "id", id)
}
