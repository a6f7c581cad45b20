package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/sim"
	"github.com/san-kum/shakerbed/internal/tilt"
)

func testResult() *sim.Result {
	return &sim.Result{
		Gesture: motion.Scramble,
		Seed:    42,
		Pellets: 2,
		Dt:      1.0 / 60.0,
		Ticks:   2,
		Seconds: 2.0 / 60.0,
		Times:   []float64{0, 1.0 / 60.0},
		Lifts: []tilt.Lifts{
			{1.5, 0, 0},
			{0, 0, 0},
		},
		Impulses:  []float64{3.0, 1.0},
		Agitation: []float64{0.8, 0.4},
		Spread:    []float64{2.1, 2.3},
		Centroids: []tilt.Vec2{{X: 0.1, Y: -0.2}, {X: 0.05, Y: -0.1}},
		Final:     []tilt.Vec2{{X: 1, Y: 2}, {X: -3, Y: 0.5}},
		Metrics:   map[string]float64{"drive_effort": 12.5},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Gesture != "scramble" {
		t.Errorf("expected gesture scramble, got %q", meta.Gesture)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["drive_effort"] != 12.5 {
		t.Errorf("expected drive_effort 12.5, got %f", meta.Metrics["drive_effort"])
	}

	ser, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(ser.Times) != 2 {
		t.Fatalf("expected 2 series rows, got %d", len(ser.Times))
	}
	if ser.Lifts[0] != (tilt.Lifts{1.5, 0, 0}) {
		t.Errorf("lift row mangled: %v", ser.Lifts[0])
	}
	if ser.Impulses[0] != 3.0 {
		t.Errorf("expected impulse 3.0, got %f", ser.Impulses[0])
	}

	final, err := st.LoadFinal(runID)
	if err != nil {
		t.Fatalf("load final failed: %v", err)
	}
	if len(final) != 2 {
		t.Fatalf("expected 2 final positions, got %d", len(final))
	}
	if final[1] != (tilt.Vec2{X: -3, Y: 0.5}) {
		t.Errorf("final position mangled: %v", final[1])
	}
}

func TestListSkipsMalformedRuns(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save(testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	junk := filepath.Join(dir, "not_a_run")
	if err := os.MkdirAll(junk, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(junk, "metadata.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 valid run, got %d", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nonexistent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing_123"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,lift0") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
