package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shakerbed/internal/tilt"
)

func TestSaveSeriesFormats(t *testing.T) {
	dir := t.TempDir()
	times := []float64{0, 0.5, 1.0, 1.5}
	agit := []float64{0, 0.8, 0.4, 0.1}
	spread := []float64{2.0, 2.2, 2.5, 2.6}

	for _, name := range []string{"series.png", "series.svg"} {
		path := filepath.Join(dir, name)
		if err := SaveSeries(path, "test run", times, agit, spread); err != nil {
			t.Fatalf("save %s failed: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s failed: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestSaveScatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.png")
	positions := []tilt.Vec2{{X: 1, Y: 2}, {X: -4, Y: 0.5}, {X: 0, Y: -6}}

	if err := SaveScatter(path, "final positions", positions); err != nil {
		t.Fatalf("save scatter failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("scatter plot missing or empty: %v", err)
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.bmp")
	err := SaveSeries(path, "t", []float64{0, 1}, []float64{0, 1}, []float64{0, 1})
	if err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestSaveSeriesEmpty(t *testing.T) {
	if err := SaveSeries("unused.png", "t", nil, nil, nil); err != ErrNoSeries {
		t.Errorf("expected ErrNoSeries, got %v", err)
	}
}
