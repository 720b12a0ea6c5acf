package remote

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/zeu5/impact-eval/policies"
	"github.com/zeu5/impact-eval/roadnet"
	"github.com/zeu5/impact-eval/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry, err := roadnet.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	preset, err := registry.Get(roadnet.DefaultPreset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server := NewServer("", &roadnet.Constructor{Preset: preset, Seed: 7}, nil)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	if err := NewClient(ts.URL + "/").Health(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStepBeforeReset(t *testing.T) {
	ts := newTestServer(t)
	_, err := NewClient(ts.URL).Step(context.Background(), types.Action{{0}})
	if !errors.Is(err, ErrRemote) {
		t.Errorf("expected ErrRemote, got %v", err)
	}
}

func TestRemoteEpisodeMatchesLocal(t *testing.T) {
	ts := newTestServer(t)

	registry, _ := roadnet.NewRegistry()
	local, err := registry.Make(roadnet.DefaultPreset, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run := func(env types.Environment) *types.Summary {
		agent := types.NewAgent(&types.AgentConfig{
			Name:        "heuristic",
			Policy:      policies.NewHeuristicPolicy(),
			Environment: env,
		})
		summary, err := agent.RunEpisode(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return summary
	}
	remoteSummary := run(NewClient(ts.URL))
	localSummary := run(local)
	if remoteSummary.Steps != localSummary.Steps {
		t.Errorf("expected %d steps, got %d", localSummary.Steps, remoteSummary.Steps)
	}
	if remoteSummary.TotalMaintenanceReward != localSummary.TotalMaintenanceReward {
		t.Errorf("maintenance reward differs: remote %v local %v", remoteSummary.TotalMaintenanceReward, localSummary.TotalMaintenanceReward)
	}
}

func TestStepErrors(t *testing.T) {
	ts := newTestServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()

	obs, err := client.Reset(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.NumSegments() != 9 {
		t.Fatalf("expected 9 segments, got %d", obs.NumSegments())
	}
	if _, err := client.Step(ctx, types.Action{{0}}); !errors.Is(err, ErrRemote) {
		t.Errorf("expected ErrRemote for a misshapen action, got %v", err)
	}

	for {
		res, err := client.Step(ctx, types.NewAction(obs, types.DoNothing))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		obs = res.Observation
		if res.Done {
			break
		}
	}
	if _, err := client.Step(ctx, types.NewAction(obs, types.DoNothing)); !errors.Is(err, types.ErrEpisodeDone) {
		t.Errorf("expected ErrEpisodeDone, got %v", err)
	}
}
