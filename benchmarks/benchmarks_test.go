package benchmarks

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeu5/impact-eval/record"
	"github.com/zeu5/impact-eval/remote"
	"github.com/zeu5/impact-eval/roadnet"
	"github.com/zeu5/impact-eval/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := GetRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunDefault(t *testing.T) {
	out, err := execute(t, "run", "--save", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out, "timestep: "); n != 50 {
		t.Errorf("expected 50 steps printed, got %d", n)
	}
	for _, line := range []string{"total reward: ", "total travel time reward: ", "total maintenance reward: ", "average normalized delay: "} {
		if !strings.Contains(out, "\n"+line) {
			t.Errorf("missing final line %q", line)
		}
	}
	if strings.Contains(out, "edge: 0") {
		t.Errorf("segment info printed without -i")
	}
}

func TestRootBehavesLikeRun(t *testing.T) {
	out, err := execute(t, "--policy", "do_nothing", "-i")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "edge: 0\nstates:") {
		t.Errorf("segment info missing")
	}
	if !strings.Contains(out, "total maintenance reward: 0.000e+00") {
		t.Errorf("do nothing should not spend anything")
	}
}

func TestRunUnknownPolicy(t *testing.T) {
	out, err := execute(t, "run", "--policy", "random")
	if !errors.Is(err, types.ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
	if out != "" {
		t.Errorf("nothing should run before the policy is resolved, got %q", out)
	}
}

func TestRunUnknownEnvironment(t *testing.T) {
	if _, err := execute(t, "run", "--env", "Nowhere-v0"); !errors.Is(err, types.ErrUnknownEnvironment) {
		t.Errorf("expected ErrUnknownEnvironment, got %v", err)
	}
}

func TestRunRecordsOutputs(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "episodes.db")
	if _, err := execute(t, "run", "--live", "--record-steps", "--save", dir, "--db", db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Errorf("config not recorded: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if len(matches) != 1 {
		t.Errorf("expected one step file, got %v", matches)
	}

	store, err := record.NewStore(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()
	rows, err := store.Episodes("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Policy != "heuristic" || rows[0].Summary.Steps != 50 {
		t.Errorf("unexpected stored episodes %+v", rows)
	}
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "compare", "--save", dir, "--plot", "--policies", "do_nothing,heuristic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per policy, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "plots", "cumulative_reward.png")); err != nil {
		t.Errorf("plot not written: %v", err)
	}
}

func TestRunRemoteEnvironment(t *testing.T) {
	registry, err := roadnet.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	preset, _ := registry.Get("Corridor-v1")
	server := remote.NewServer("", &roadnet.Constructor{Preset: preset, Seed: 1}, nil)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	out, err := execute(t, "run", "--env", ts.URL, "--policy", "fail_replace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out, "timestep: "); n != preset.Horizon {
		t.Errorf("expected %d steps, got %d", preset.Horizon, n)
	}
}

func TestEnvs(t *testing.T) {
	out, err := execute(t, "envs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, roadnet.DefaultPreset+" (default)") || !strings.Contains(out, "Corridor-v1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
