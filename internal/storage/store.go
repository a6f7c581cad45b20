// Package storage persists headless runs as one directory per run:
// metadata.json for the run summary, series.csv for the per-tick series
// and final.csv for the pellet positions at the end.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/shakerbed/internal/sim"
	"github.com/san-kum/shakerbed/internal/tilt"
)

var (
	ErrNotFound = errors.New("storage: run not found")
	ErrNoData   = errors.New("storage: run has no recorded series")
)

var seriesHeader = []string{
	"time", "lift0", "lift1", "lift2", "impulse",
	"agitation", "spread", "centroid_x", "centroid_y",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the summary record written next to a run's series.
type RunMetadata struct {
	ID        string             `json:"id"`
	Gesture   string             `json:"gesture"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Pellets   int                `json:"pellets"`
	Dt        float64            `json:"dt"`
	Seconds   float64            `json:"seconds"`
	Ticks     int                `json:"ticks"`
	Loop      bool               `json:"loop"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series holds a run's per-tick record loaded back from series.csv.
type Series struct {
	Times     []float64
	Lifts     []tilt.Lifts
	Impulses  []float64
	Agitation []float64
	Spread    []float64
	Centroids []tilt.Vec2
}

// Save writes the result under a fresh run directory and returns its id.
func (s *Store) Save(res *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Gesture, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Gesture:   string(res.Gesture),
		Timestamp: time.Now(),
		Seed:      res.Seed,
		Pellets:   res.Pellets,
		Dt:        res.Dt,
		Seconds:   res.Seconds,
		Ticks:     res.Ticks,
		Loop:      res.Loop,
		Metrics:   res.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := s.writeSeries(filepath.Join(runDir, "series.csv"), res); err != nil {
		return "", err
	}
	if err := writePositions(filepath.Join(runDir, "final.csv"), res.Final); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeSeries(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for i := range res.Times {
		row := []string{
			ftoa(res.Times[i]),
			ftoa(res.Lifts[i][0]), ftoa(res.Lifts[i][1]), ftoa(res.Lifts[i][2]),
			ftoa(res.Impulses[i]),
			ftoa(res.Agitation[i]),
			ftoa(res.Spread[i]),
			ftoa(res.Centroids[i].X), ftoa(res.Centroids[i].Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePositions(path string, positions []tilt.Vec2) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range positions {
		if err := w.Write([]string{ftoa(p.X), ftoa(p.Y)}); err != nil {
			return err
		}
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the metadata of every saved run, newest first. Directories
// without a readable metadata.json are skipped with a warning on stderr.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			fmt.Fprintf(os.Stderr, "storage: skipping %s: %v\n", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads a run's per-tick record back.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, runID)
	}

	ser := &Series{}
	for _, rec := range records[1:] {
		if len(rec) < len(seriesHeader) {
			continue
		}
		vals := make([]float64, len(seriesHeader))
		ok := true
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(rec[i], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		ser.Times = append(ser.Times, vals[0])
		ser.Lifts = append(ser.Lifts, tilt.Lifts{vals[1], vals[2], vals[3]})
		ser.Impulses = append(ser.Impulses, vals[4])
		ser.Agitation = append(ser.Agitation, vals[5])
		ser.Spread = append(ser.Spread, vals[6])
		ser.Centroids = append(ser.Centroids, tilt.Vec2{X: vals[7], Y: vals[8]})
	}
	return ser, nil
}

// LoadFinal reads the end-of-run pellet positions.
func (s *Store) LoadFinal(runID string) ([]tilt.Vec2, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "final.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	positions := make([]tilt.Vec2, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(records[i][0], 64)
		y, errY := strconv.ParseFloat(records[i][1], 64)
		if errX != nil || errY != nil {
			continue
		}
		positions = append(positions, tilt.Vec2{X: x, Y: y})
	}
	return positions, nil
}

// ExportCSV re-emits a run's series verbatim to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
