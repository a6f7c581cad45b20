package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shakerbed/internal/sim"
)

const sampleScenario = `
name: evening-cycle
description: settle, stir, then spill
steps:
  - gesture: flatten
    seconds: 2
  - gesture: scramble
    seconds: 3
    loop: true
  - gesture: dump
    seconds: 2
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := Load(writeScenario(t, sampleScenario))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "evening-cycle" {
		t.Errorf("name = %q", sc.Name)
	}
	if len(sc.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(sc.Steps))
	}
	if !sc.Steps[1].Loop {
		t.Error("second step should loop")
	}
	if sc.Duration() != 7 {
		t.Errorf("duration = %f, want 7", sc.Duration())
	}
}

func TestValidateRejectsUnknownGesture(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Gesture: "wiggle", Seconds: 2}}}
	if err := sc.Validate(); err == nil {
		t.Error("expected an error for an unknown gesture")
	}
}

func TestValidateRejectsNonPositiveSeconds(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Gesture: "dump", Seconds: 0}}}
	if err := sc.Validate(); err == nil {
		t.Error("expected an error for a zero-length step")
	}
}

func TestValidateRejectsEmptyScenario(t *testing.T) {
	sc := &Scenario{Name: "empty"}
	if !errors.Is(sc.Validate(), ErrEmptyScenario) {
		t.Error("expected ErrEmptyScenario")
	}
}

func TestRunRecordsWholeTimeline(t *testing.T) {
	sc := &Scenario{
		Name: "short",
		Steps: []Step{
			{Gesture: "scramble", Seconds: 1},
			{Gesture: "dump", Seconds: 1},
		},
	}
	cfg := sim.Config{Pellets: 40, Seed: 5}

	var visited []string
	res, err := Run(context.Background(), cfg, sc, func(i int, step Step) {
		visited = append(visited, step.Gesture)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(visited) != 2 || visited[0] != "scramble" || visited[1] != "dump" {
		t.Errorf("steps visited out of order: %v", visited)
	}
	if res.Ticks != 120 {
		t.Errorf("expected 120 recorded ticks for 2 seconds, got %d", res.Ticks)
	}
	if string(res.Gesture) != "short" {
		t.Errorf("result should carry the scenario name, got %q", res.Gesture)
	}
	if len(res.Final) != 40 {
		t.Errorf("expected 40 final positions, got %d", len(res.Final))
	}
}

func TestRunIsSeedDeterministic(t *testing.T) {
	sc := &Scenario{Name: "det", Steps: []Step{{Gesture: "dump", Seconds: 1.5}}}
	cfg := sim.Config{Pellets: 30, Seed: 11}

	a, err := Run(context.Background(), cfg, sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), cfg, sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Final {
		if a.Final[i] != b.Final[i] {
			t.Fatalf("final pellet %d differs across identical runs", i)
		}
	}
}
